package gridsolver

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
	"gopkg.in/h2non/gentleman.v2/plugins/timeout"
)

const REQUEST_TIMEOUT = time.Second * 30

type GentlemanClient struct {
	apiKey  string
	baseURL string

	client *gentleman.Client
}

// NewRemoteClient creates a client for the given tier endpoint
func NewRemoteClient(apiKey, tier string) *GentlemanClient {
	return NewRemoteClientURL(apiKey, EndpointForTier(tier))
}

// NewRemoteClientURL creates a client against an explicit base URL
func NewRemoteClientURL(apiKey, baseURL string) *GentlemanClient {
	client := gentleman.New()
	client.Use(timeout.Request(REQUEST_TIMEOUT))

	return &GentlemanClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}
}

// Interface implementation
func (c *GentlemanClient) Submit(ctx context.Context, payload *Payload) (*Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	request := c.client.Request().
		Method("POST").
		URL(c.baseURL + SOLVE_PATH)

	request.SetHeader("apikey", c.apiKey)
	request.Use(body.JSON(payload))

	return c.send(request)
}

// Interface implementation.
//
// The service hands out the full result URL itself, we only follow it
func (c *GentlemanClient) PollResult(ctx context.Context, url string) (*Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	request := c.client.Request().
		Method("GET").
		URL(url)

	request.SetHeader("apikey", c.apiKey)

	return c.send(request)
}

func (c *GentlemanClient) send(request *gentleman.Request) (*Verdict, error) {
	response, err := request.Send()
	if err != nil {
		return nil, err
	}

	if !response.Ok {
		return nil, fmt.Errorf("solver responded %d: %s", response.StatusCode, response.String())
	}

	verdict := new(Verdict)
	if err := response.JSON(verdict); err != nil {
		return nil, fmt.Errorf("cannot read solver verdict: %w", err)
	}

	return verdict, nil
}

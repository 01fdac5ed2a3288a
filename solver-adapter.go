package gridsolver

import "github.com/go-rod/rod"

// PageSolver adapts Solver to the SetPage/Solve plug-in contract that
// navigator-style crawlers expect from a captcha solver
type PageSolver struct {
	solver *Solver

	page *rod.Page
}

func NewPageSolver(model *Model) *PageSolver {
	return &PageSolver{solver: NewSolver(model)}
}

// Set instance of current chrome page
func (ps *PageSolver) SetPage(page *rod.Page) {
	ps.page = page
}

// Solve captcha. Return solved status and error
func (ps *PageSolver) Solve() (bool, error) {
	if ps.page == nil {
		return false, newSolveError(FRAME_NOT_FOUND, "no page attached", nil)
	}

	if err := ps.solver.Solve(ps.page); err != nil {
		return false, err
	}
	return true, nil
}

package cmd

import (
	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/renderer"
)

// renderSession renders the current plan of the session.
func renderSession(s *carbonplan.Session, opts renderer.PlanRenderOptions) (string, error) {
	report, err := s.Report()
	if err != nil {
		return "", err
	}
	return renderer.RenderPlan(renderer.NewPlan(s.Catalog(), report, s.ID()), opts), nil
}

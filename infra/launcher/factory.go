package launcher

import (
	corelauncher "github.com/dongqi-wu/reisego/core/launcher"
)

// init registers the shipped solvers. The mock engine exists so deployments
// can smoke-test the full orchestration path without a julia install.
func init() {
	_ = corelauncher.Register("gurobi", func(p corelauncher.Params, d corelauncher.Deps) (corelauncher.Launcher, error) {
		return newJuliaLauncher("Gurobi", "Gurobi.Optimizer", p, d)
	})
	_ = corelauncher.Register("glpk", func(p corelauncher.Params, d corelauncher.Deps) (corelauncher.Launcher, error) {
		return newJuliaLauncher("GLPK", "GLPK.Optimizer", p, d)
	})
	_ = corelauncher.Register("mock", func(p corelauncher.Params, d corelauncher.Deps) (corelauncher.Launcher, error) {
		return &corelauncher.Mock{Params: p, Deps: d}, nil
	})
}

// Package doctor inspects a developer machine and reports what is missing
// or unhealthy.
//
// Each check is a plain function of its inputs that returns Findings:
//   - CheckCommand: tool on PATH, optional version probe
//   - CheckService: container running and its port accepting connections
//   - CheckDisk / CheckMemory: local resource thresholds
//   - CheckNetwork: outbound TCP reachability
//
// The Runner calls every check in a fixed order, folds the findings into a
// single Report and never stops early. All OS access goes through the
// capability interfaces in Probes so tests can substitute fakes:
//
//	runner := doctor.New(cfg, doctor.WithVerbose(true))
//	report := runner.Run(ctx)
//	doctor.PrintReport(os.Stdout, report, cfg.HelpLinks, ui.NoColorStyles())
//	if !report.Passed() {
//	    os.Exit(1)
//	}
package doctor

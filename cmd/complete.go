package cmd

import (
	"flag"

	"github.com/etnz/paycal"
	"github.com/etnz/paycal/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line of c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		root.Sub[sc.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argPredictor(sc.Name()),
		}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "by":
			flags[f.Name] = predict.Set{"month", "quarter", "year"}
		case "status":
			flags[f.Name] = predict.Set{string(paycal.Unpaid), string(paycal.Paid), string(paycal.Early)}
		case "lang":
			flags[f.Name] = predict.Set{"en", "uk"}
		case "data", "o":
			flags[f.Name] = predict.Files("*.json")
		case "db":
			flags[f.Name] = predict.Files("*.db")
		default:
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}

func argPredictor(name string) complete.Predictor {
	switch name {
	case "show", "set", "toggle", "clear":
		return complete.PredictFunc(func(string) []string { return scheduleKeys(false) })
	case "projects":
		return complete.PredictFunc(func(string) []string { return scheduleKeys(true) })
	case "currency":
		return predict.Set{string(paycal.USD), string(paycal.UAH)}
	case "view":
		return predict.Set{"month", "quarter", "year"}
	case "import":
		return predict.Files("*.json")
	case "topic":
		topics, _ := docs.GetAllTopics()
		return predict.Set(topics)
	default:
		return predict.Nothing
	}
}

// scheduleKeys returns the record keys, or the project keys, of the
// configured schedule. Errors yield no completion.
func scheduleKeys(projects bool) []string {
	cfg, err := LoadConfig()
	if err != nil {
		return nil
	}
	s, err := paycal.LoadSchedule(cfg.RecordsPath, cfg.DataFiles...)
	if err != nil {
		return nil
	}
	if projects {
		return s.ProjectKeys()
	}
	keys := make([]string, 0, len(s.Records()))
	for _, r := range s.Records() {
		keys = append(keys, r.Key())
	}
	return keys
}

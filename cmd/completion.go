package cmd

import (
	"flag"

	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application: global flags,
// subcommands and their flags, with intervention ids and categories taken
// from the catalog.
func Completion(catalog *carbonplan.Catalog) *complete.Command {
	var allocs predict.Set
	for _, i := range catalog.Interventions() {
		allocs = append(allocs, i.ID()+"=")
	}
	var categories predict.Set
	for _, c := range carbonplan.AllCategories() {
		categories = append(categories, c.Slug())
	}
	topics := predict.Set(topicNames())

	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"catalog-file": predict.Files("*.jsonl"),
			"ops-file":     predict.Files("*.jsonl"),
			"budget":       predict.Something,
			"target":       predict.Something,
			"future":       predict.Something,
			"alloc":        allocs,
			"raw":          predict.Nothing,
			"v":            predict.Nothing,
		},
	}

	for _, c := range Commands {
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predict.Something
			if isBool(f) {
				sub.Flags[f.Name] = predict.Nothing
			}
		})
		switch c.Name() {
		case "catalog", "fill":
			sub.Flags["c"] = categories
		case "topic":
			sub.Args = topics
		}
		root.Sub[c.Name()] = sub
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func commandNames() []string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name())
	}
	return names
}

func topicNames() []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}

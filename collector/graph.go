package collector

const (
	// Category groups all freebox graphs together
	Category = "network"

	argsFrom0 = "--base 1000 -l 0"
)

// DirectionalGraph builds the graph of a down/up pair named prefix_down and prefix_up
func DirectionalGraph(prefix, title, vlabel, info string) Graph {
	return Graph{
		Title:    title,
		Category: Category,
		Args:     argsFrom0,
		VLabel:   vlabel,
		Info:     info,
		Fields: []Field{
			{Name: prefix + "_down", Label: "download", Info: title + ", downstream"},
			{Name: prefix + "_up", Label: "upload", Info: title + ", upstream"},
		},
	}
}

// Zero returns a sample of value 0 for every field of g
func (g Graph) Zero() []Sample {
	s := make([]Sample, 0, len(g.Fields))
	for _, f := range g.Fields {
		s = append(s, Sample{Name: f.Name})
	}
	return s
}

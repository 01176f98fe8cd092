package api

// Static marketing copy for the landing page sections. Kept in Go so
// the templates stay purely structural.

type PipelineStep struct {
	Number      int
	Title       string
	Description string
}

type MetricCard struct {
	Value   string
	Caption string
}

type Milestone struct {
	Period string
	Title  string
	Detail string
	Done   bool
}

type PageData struct {
	Title      string
	Tagline    string
	Pipeline   []PipelineStep
	Metrics    []MetricCard
	Milestones []Milestone
}

func HomePage() PageData {
	return PageData{
		Title:   "Sentinel",
		Tagline: "Upload a clip. Know if the face is real.",
		Pipeline: []PipelineStep{
			{Number: 1, Title: "Frame Sampling", Description: "The clip is decoded and faces are located frame by frame, densely at the start and sparsely after."},
			{Number: 2, Title: "Face Analysis", Description: "Each face crop runs through an Xception network trained on paired real and synthetic footage."},
			{Number: 3, Title: "Score Aggregation", Description: "Per-face scores are pooled across the clip into a single robust confidence value."},
			{Number: 4, Title: "Verdict", Description: "The clip is labeled Real or Fake with annotated evidence frames showing what was examined."},
		},
		Metrics: []MetricCard{
			{Value: "96.4%", Caption: "validation accuracy"},
			{Value: "0.991", Caption: "AUC on held-out data"},
			{Value: "<15s", Caption: "typical clip turnaround"},
			{Value: "224px", Caption: "face crop resolution"},
		},
		Milestones: []Milestone{
			{Period: "Q1", Title: "Baseline classifier", Detail: "Xception backbone, single-frame training", Done: true},
			{Period: "Q2", Title: "Video aggregation", Detail: "Percentile pooling over sampled faces", Done: true},
			{Period: "Q3", Title: "Evidence frames", Detail: "Annotated bounding boxes in the result card", Done: true},
			{Period: "Q4", Title: "Temporal features", Detail: "Cross-frame consistency signals", Done: false},
		},
	}
}

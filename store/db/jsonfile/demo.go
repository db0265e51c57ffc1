package jsonfile

import (
	_ "embed"
)

// demoDataset is a small synthetic snapshot served in demo mode so the
// explorer runs without a dataset file.
//
//go:embed demo_dataset.json
var demoDataset []byte

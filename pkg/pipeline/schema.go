package pipeline

import "biasreport/pkg/data"

// Schema describes the columns a dataset must carry.
type Schema struct {
	FeatureNames []string
}

// LawSchool is the schema of the bar passage dataset.
var LawSchool = Schema{
	FeatureNames: []string{RaceColumn, OutcomeColumn},
}

// Check returns a data.ErrSchema error if ds lacks any of the schema's columns.
func (s Schema) Check(ds *data.Dataset) error {
	return ds.RequireColumns(s.FeatureNames...)
}

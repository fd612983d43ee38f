package calc

import "github.com/m-aljasem/Sample-Size-Calculator/internal/model"

// Package-level calculators backed by the table-driven Default engine.

func EstimateProportion(in model.Inputs) model.Result       { return Default.EstimateProportion(in) }
func EstimateMean(in model.Inputs) model.Result             { return Default.EstimateMean(in) }
func EstimateDiff2Proportions(in model.Inputs) model.Result { return Default.EstimateDiff2Proportions(in) }
func EstimateOddsRatio(in model.Inputs) model.Result        { return Default.EstimateOddsRatio(in) }
func EstimateRelativeRisk(in model.Inputs) model.Result     { return Default.EstimateRelativeRisk(in) }
func EstimateCorrelation(in model.Inputs) model.Result      { return Default.EstimateCorrelation(in) }
func TestProportion(in model.Inputs) model.Result           { return Default.TestProportion(in) }
func Test2Proportions(in model.Inputs) model.Result         { return Default.Test2Proportions(in) }
func Test2Means(in model.Inputs) model.Result               { return Default.Test2Means(in) }
func Test2Correlations(in model.Inputs) model.Result        { return Default.Test2Correlations(in) }
func Test2Rates(in model.Inputs) model.Result               { return Default.Test2Rates(in) }
func PowerTestProportion(in model.Inputs) model.Result      { return Default.PowerTestProportion(in) }
func PowerTest2Proportions(in model.Inputs) model.Result    { return Default.PowerTest2Proportions(in) }
func PowerTest2Means(in model.Inputs) model.Result          { return Default.PowerTest2Means(in) }

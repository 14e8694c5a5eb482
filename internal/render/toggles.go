package render

// Interactive chart changes redraw with animation; sync renders never do.

// ToggleDataset flips one timeline dataset between shown and hidden.
func ToggleDataset(c Chart, dataset int) {
	if c == nil {
		return
	}
	c.SetHidden(dataset, !c.Hidden(dataset))
	c.Redraw(true)
}

// FocusDataset shows only the given timeline dataset.
func FocusDataset(c Chart, dataset int) {
	if c == nil {
		return
	}
	c.SetHidden(DatasetCPU, dataset != DatasetCPU)
	c.SetHidden(DatasetMemory, dataset != DatasetMemory)
	c.Redraw(true)
}

// ShowAllDatasets unhides every timeline dataset.
func ShowAllDatasets(c Chart) {
	if c == nil {
		return
	}
	c.SetHidden(DatasetCPU, false)
	c.SetHidden(DatasetMemory, false)
	c.Redraw(true)
}

package data

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/internal/parallel"
	"github.com/scicore-go/dataset/tag"
)

// Rebin redistributes data's bin values from oldCoord's edges onto
// newCoord's edges along label, by linear overlap weighting: a new bin's
// value is the sum, over every old bin it overlaps, of the old bin's
// value scaled by the fraction of the old bin's width the overlap
// covers. Both edge coordinates must be exactly one-dimensional over
// label and monotonically increasing. data must be an owned (non-view)
// float64 Variable: the self-overlap hazard that the arithmetic kernel
// guards against cannot be resolved for rebin's read pattern, so
// View-backed operands are rejected outright rather than silently
// materialized.
func Rebin(data *Variable, label dim.Dim, oldCoord, newCoord *Variable) (*Variable, error) {
	if data.kind != tag.KindFloat64 || oldCoord.kind != tag.KindFloat64 || newCoord.kind != tag.KindFloat64 {
		return nil, newErr(KindUnsupportedElement, "rebin only supports float64 data and edge coordinates")
	}
	if data.IsView() {
		return nil, newErr(KindAlias, "rebin requires an owned (non-view) data variable")
	}
	if oldCoord.dims.NDim() != 1 || oldCoord.dims.Labels()[0] != label {
		return nil, newErr(KindContract, "old edge coordinate must be exactly one-dimensional over %v", label)
	}
	if newCoord.dims.NDim() != 1 || newCoord.dims.Labels()[0] != label {
		return nil, newErr(KindContract, "new edge coordinate must be exactly one-dimensional over %v", label)
	}

	oldExtent, err := data.dims.Size(label)
	if err != nil {
		return nil, err
	}
	oldEdgeCount, _ := oldCoord.dims.Size(label)
	if oldEdgeCount != oldExtent+1 {
		return nil, newErr(KindEdgeMismatch, "old edge coordinate has %d edges, want %d for %d bins", oldEdgeCount, oldExtent+1, oldExtent)
	}
	newEdgeCount, _ := newCoord.dims.Size(label)
	if newEdgeCount < 2 {
		return nil, newErr(KindContract, "new edge coordinate must have at least 2 edges")
	}
	newExtent := newEdgeCount - 1

	newDims, err := data.dims.Resize(label, newExtent)
	if err != nil {
		return nil, err
	}

	oldEdgesView, err := Get[float64](oldCoord)
	if err != nil {
		return nil, err
	}
	newEdgesView, err := Get[float64](newCoord)
	if err != nil {
		return nil, err
	}
	oldEdges := make([]float64, oldEdgeCount)
	for i := range oldEdges {
		oldEdges[i] = oldEdgesView.At(i)
	}
	newEdges := make([]float64, newEdgeCount)
	for i := range newEdges {
		newEdges[i] = newEdgesView.At(i)
	}

	dataView, err := Get[float64](data)
	if err != nil {
		return nil, err
	}
	out := NewBuffer[float64](newDims.Volume())
	dst := out.Write()

	labelPos := -1
	for i, l := range data.dims.Labels() {
		if l == label {
			labelPos = i
		}
	}
	dataStrides := data.dims.Strides()
	outStrides := newDims.Strides()

	reducedDims, err := data.dims.Erase(label)
	if err != nil {
		return nil, err
	}
	reducedStrides := reducedDims.Strides()
	axisMap := make([]int, 0, data.dims.NDim()-1)
	for i := 0; i < data.dims.NDim(); i++ {
		if i != labelPos {
			axisMap = append(axisMap, i)
		}
	}
	outerCount := reducedDims.Volume()

	parallel.For(outerCount, func(outer int) {
		rem := outer
		dataBase, outBase := 0, 0
		for k, stride := range reducedStrides {
			coord := rem / stride
			rem %= stride
			fullAxis := axisMap[k]
			dataBase += coord * dataStrides[fullAxis]
			outBase += coord * outStrides[fullAxis]
		}
		values := make([]float64, oldExtent)
		for i := 0; i < oldExtent; i++ {
			values[i] = dataView.At(dataBase + i*dataStrides[labelPos])
		}
		result := make([]float64, newExtent)
		rebin1D(oldEdges, newEdges, values, result)
		for j := 0; j < newExtent; j++ {
			dst[outBase+j*outStrides[labelPos]] = result[j]
		}
	}, parallel.DefaultConfig())

	return &Variable{tag: data.tag, name: data.name, unit: data.unit, dims: newDims, kind: data.kind, data: out}, nil
}

// rebin1D redistributes one 1-D histogram (values, with bin edges
// oldEdges) onto result (with bin edges newEdges), via a two-pointer
// sweep over both monotonically increasing edge sequences.
func rebin1D(oldEdges, newEdges, values, result []float64) {
	i, j := 0, 0
	for i < len(values) && j < len(result) {
		lo := max(oldEdges[i], newEdges[j])
		hi := min(oldEdges[i+1], newEdges[j+1])
		if hi > lo {
			width := oldEdges[i+1] - oldEdges[i]
			if width > 0 {
				result[j] += values[i] * (hi - lo) / width
			}
		}
		if oldEdges[i+1] <= newEdges[j+1] {
			i++
		} else {
			j++
		}
	}
}

// RebinDataset replaces the dimension-coordinate of label throughout ds
// with newCoord and rebins every Data-role Variable that varies along
// label; Variables not using label are carried through unchanged.
// Variance is never rebinned automatically (linear overlap weighting
// does not propagate variance correctly): if ds holds a Variance
// Variable that varies along label, RebinDataset fails with
// KindUnsupported, and rebinning it is the caller's responsibility, via
// a direct Rebin call.
func RebinDataset(ds *Dataset, label dim.Dim, newCoord *Variable) (*Dataset, error) {
	oldIdx := ds.dimensionCoordOwner(label)
	if oldIdx < 0 {
		return nil, newErr(KindMissingVariable, "dataset has no dimension-coordinate for %v", label)
	}
	oldCoord := ds.vars[oldIdx]

	out := NewDataset()
	for _, v := range ds.vars {
		if v == oldCoord {
			if err := out.Insert(newCoord); err != nil {
				return nil, err
			}
			continue
		}
		if v.tag == tag.Variance && v.dims.Contains(label) {
			return nil, newErr(KindUnsupported, "rebin does not automatically propagate variance for %v; rebin it explicitly", v.tag)
		}
		if v.tag.Role() != tag.Data || !v.dims.Contains(label) {
			if err := out.Insert(v.Clone()); err != nil {
				return nil, err
			}
			continue
		}
		rebinned, err := Rebin(v, label, oldCoord, newCoord)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(rebinned); err != nil {
			return nil, err
		}
	}
	return out, nil
}

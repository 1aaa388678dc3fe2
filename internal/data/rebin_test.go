package data

import (
	"testing"

	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rebin1DVar(t *testing.T, values, oldEdges, newEdges []float64) []float64 {
	t.Helper()
	dataDims, _ := NewDimensions(DE(dim.Tof, len(values)))
	data, err := MakeVariableFrom[float64](tag.TofData, "counts", dataDims, values)
	require.NoError(t, err)
	oldDims, _ := NewDimensions(DE(dim.Tof, len(oldEdges)))
	oldCoord, err := MakeVariableFrom[float64](tag.TofCoord, "", oldDims, oldEdges)
	require.NoError(t, err)
	newDims, _ := NewDimensions(DE(dim.Tof, len(newEdges)))
	newCoord, err := MakeVariableFrom[float64](tag.TofCoord, "", newDims, newEdges)
	require.NoError(t, err)

	result, err := Rebin(data, dim.Tof, oldCoord, newCoord)
	require.NoError(t, err)
	view, err := Get[float64](result)
	require.NoError(t, err)
	n := view.Dims().Volume()
	out := make([]float64, n)
	for i := range out {
		out[i] = view.At(i)
	}
	return out
}

func TestRebinCoarserMergesPairs(t *testing.T) {
	got := rebin1DVar(t, []float64{10, 20, 30, 40}, []float64{0, 1, 2, 3, 4}, []float64{0, 2, 4})
	assert.Equal(t, []float64{30, 70}, got)
}

func TestRebinIdentity(t *testing.T) {
	edges := []float64{0, 1, 2, 3, 4}
	got := rebin1DVar(t, []float64{10, 20, 30, 40}, edges, edges)
	assert.Equal(t, []float64{10, 20, 30, 40}, got)
}

func TestRebinFinerConservesTotal(t *testing.T) {
	got := rebin1DVar(t, []float64{10, 20}, []float64{0, 2, 4}, []float64{0, 1, 2, 3, 4})
	assert.Equal(t, []float64{5, 5, 10, 10}, got)
}

func TestRebinAlongNonInnermostAxis(t *testing.T) {
	dataDims, _ := NewDimensions(DE(dim.Tof, 2), DE(dim.Y, 2))
	data, err := MakeVariableFrom[float64](tag.TofData, "counts", dataDims, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	oldDims, _ := NewDimensions(DE(dim.Tof, 3))
	oldCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", oldDims, []float64{0, 1, 2})
	newDims, _ := NewDimensions(DE(dim.Tof, 2))
	newCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", newDims, []float64{0, 2})

	result, err := Rebin(data, dim.Tof, oldCoord, newCoord)
	require.NoError(t, err)
	view, err := Get[float64](result)
	require.NoError(t, err)
	assert.Equal(t, float64(4), view.At(0))
	assert.Equal(t, float64(6), view.At(1))
}

func TestRebinRejectsViewOperand(t *testing.T) {
	dims, _ := NewDimensions(DE(dim.Y, 2), DE(dim.Tof, 2))
	data, _ := MakeVariableFrom[float64](tag.TofData, "counts", dims, []float64{1, 2, 3, 4})
	sliced, err := data.View(dim.Y, 0, CollapseSentinel)
	require.NoError(t, err)
	oldDims, _ := NewDimensions(DE(dim.Tof, 3))
	oldCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", oldDims, []float64{0, 1, 2})
	newDims, _ := NewDimensions(DE(dim.Tof, 2))
	newCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", newDims, []float64{0, 2})

	_, err = Rebin(sliced, dim.Tof, oldCoord, newCoord)
	assert.Error(t, err, "rebin should reject a view-backed data operand")
}

func TestRebinDatasetRejectsVariance(t *testing.T) {
	dataDims, _ := NewDimensions(DE(dim.Tof, 2))
	data, _ := MakeVariableFrom[float64](tag.TofData, "counts", dataDims, []float64{10, 20})
	variance, _ := MakeVariableFrom[float64](tag.Variance, "counts", dataDims, []float64{1, 1})
	oldDims, _ := NewDimensions(DE(dim.Tof, 3))
	oldCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", oldDims, []float64{0, 1, 2})

	ds := NewDataset()
	require.NoError(t, ds.Insert(data))
	require.NoError(t, ds.Insert(variance))
	require.NoError(t, ds.Insert(oldCoord))

	newDims, _ := NewDimensions(DE(dim.Tof, 2))
	newCoord, _ := MakeVariableFrom[float64](tag.TofCoord, "", newDims, []float64{0, 2})

	_, err := RebinDataset(ds, dim.Tof, newCoord)
	assert.Error(t, err, "RebinDataset should refuse to silently rebin a Variance variable")
}

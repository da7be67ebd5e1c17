package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() Metrics {
	return Metrics{
		{Name: "Revenue", Value: 8900},
		{Name: "Net Profit", Value: 800},
		{Name: "Gross Margin", Value: 45},
		{Name: "ROE", Value: 15},
		{Name: "Total Assets", Value: 15000},
	}
}

func TestMetrics_SetKeepsOrder(t *testing.T) {
	var m Metrics
	m = m.Set("Revenue", 1)
	m = m.Set("ROE", 2)
	m = m.Set("Revenue", 3)

	assert.Equal(t, []string{"Revenue", "ROE"}, m.Keys())
	assert.Equal(t, []float64{3, 2}, m.Values())

	v, ok := m.Get("ROE")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	_, ok = m.Get("Debt Ratio")
	assert.False(t, ok)
}

func TestMetrics_Filter(t *testing.T) {
	m := sample()
	assert.Equal(t, []string{"Revenue", "Net Profit", "Gross Margin"}, m.Filter("revenue", "profit", "margin").Keys())
	assert.Equal(t, []string{"Total Assets"}, m.Filter("asset").Keys())
	assert.Empty(t, m.Filter("growth"))
}

func TestMetrics_HeadTail(t *testing.T) {
	m := sample()
	assert.Equal(t, []string{"Revenue", "Net Profit"}, m.Head(2).Keys())
	assert.Equal(t, []string{"ROE", "Total Assets"}, m.Tail(2).Keys())
	assert.Len(t, m.Head(10), 5)
	assert.Len(t, m.Tail(10), 5)

	small := m.Head(2)
	assert.Equal(t, small.Keys(), small.Tail(4).Keys())

	// Head 返回副本
	h := m.Head(1)
	h[0].Value = -1
	assert.Equal(t, 8900.0, m[0].Value)
}

func TestMetrics_Sum(t *testing.T) {
	assert.Equal(t, 24760.0, sample().Sum())
	assert.Zero(t, Metrics{}.Sum())
}

func TestFailure(t *testing.T) {
	r := Failure(errors.New("boom"))
	assert.False(t, r.OK())
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "boom", r.Message)

	var nilResult *ChartResult
	assert.False(t, nilResult.OK())
}

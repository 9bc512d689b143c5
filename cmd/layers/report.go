package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/layers/backend/cpu"
	"github.com/born-ml/layers/nn"
	"github.com/born-ml/layers/tensor"
)

type report struct {
	layer   string
	input   tensor.Shape
	output  *tensor.Tensor[float32, *cpu.Backend]
	params  []*nn.Parameter[*cpu.Backend]
	elapsed time.Duration
	seed    uint64
}

// outputStats summarizes a tensor's values.
type outputStats struct {
	min, max, mean, rms float64
}

func statsOf(data []float32) outputStats {
	if len(data) == 0 {
		return outputStats{}
	}
	vals := make([]float64, len(data))
	for i, v := range data {
		vals[i] = float64(v)
	}
	n := float64(len(vals))
	return outputStats{
		min:  floats.Min(vals),
		max:  floats.Max(vals),
		mean: floats.Sum(vals) / n,
		rms:  floats.Norm(vals, 2) / math.Sqrt(n),
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoFormatHeaders(false)
	return table
}

func writeReport(w io.Writer, r report) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", r.layer); err != nil {
		return err
	}

	total := 0
	for _, p := range r.params {
		total += p.Shape().NumElements()
	}

	summary := newTable(w, []string{"INPUT", "OUTPUT", "PARAMS", "TIME", "SEED"})
	summary.Append([]string{
		shapeString(r.input),
		shapeString(r.output.Shape()),
		strconv.Itoa(total),
		r.elapsed.Round(time.Microsecond).String(),
		strconv.FormatUint(r.seed, 10),
	})
	summary.Render()

	if len(r.params) > 0 {
		fmt.Fprintln(w)
		params := newTable(w, []string{"PARAMETER", "SHAPE", "COUNT"})
		for _, p := range r.params {
			params.Append([]string{p.Name(), shapeString(p.Shape()), strconv.Itoa(p.Shape().NumElements())})
		}
		params.Render()
	}

	fmt.Fprintln(w)
	s := statsOf(r.output.Data())
	stats := newTable(w, []string{"MIN", "MAX", "MEAN", "RMS"})
	stats.Append([]string{formatFloat(s.min), formatFloat(s.max), formatFloat(s.mean), formatFloat(s.rms)})
	stats.Render()

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

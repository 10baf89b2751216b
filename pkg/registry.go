package cffilter

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"go-hep.org/x/hep/hbook"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type histogram1D struct {
	hist    *hbook.H1D
	entries int64
}

type histogram2D struct {
	hist    *hbook.H2D
	entries int64
	sumX    float64
	sumX2   float64
}

// HistogramSummary condenses one histogram for the output file.
type HistogramSummary struct {
	Name    string
	Entries int64
	Mean    float64
	StdDev  float64
}

// HistogramRegistry books and fills QA histograms by name. Fills on
// names that were never booked are dropped with a single warning.
type HistogramRegistry struct {
	h1     map[string]*histogram1D
	h2     map[string]*histogram2D
	warned map[string]bool
}

func NewHistogramRegistry() *HistogramRegistry {
	return &HistogramRegistry{
		h1:     make(map[string]*histogram1D),
		h2:     make(map[string]*histogram2D),
		warned: make(map[string]bool),
	}
}

func (registry *HistogramRegistry) Book1D(name string, bins int, min float64, max float64) {
	registry.h1[name] = &histogram1D{hist: hbook.NewH1D(bins, min, max)}
}

func (registry *HistogramRegistry) Book2D(name string, xbins int, xmin float64, xmax float64, ybins int, ymin float64, ymax float64) {
	registry.h2[name] = &histogram2D{hist: hbook.NewH2D(xbins, xmin, xmax, ybins, ymin, ymax)}
}

func (registry *HistogramRegistry) warnUnknown(name string) {
	if !registry.warned[name] {
		registry.warned[name] = true
		logger.Warn(fmt.Sprintf("Histogram %s was never booked, dropping fills", name), "registry")
	}
}

func (registry *HistogramRegistry) Fill(name string, x float64) {
	entry, ok := registry.h1[name]
	if !ok {
		registry.warnUnknown(name)
		return
	}
	entry.hist.Fill(x, 1)
	entry.entries++
}

func (registry *HistogramRegistry) Fill2D(name string, x float64, y float64) {
	entry, ok := registry.h2[name]
	if !ok {
		registry.warnUnknown(name)
		return
	}
	entry.hist.Fill(x, y, 1)
	entry.entries++
	entry.sumX += x
	entry.sumX2 += x * x
}

// Entries returns the number of fills of one histogram, or -1 for a
// name that was never booked.
func (registry *HistogramRegistry) Entries(name string) int64 {
	if entry, ok := registry.h1[name]; ok {
		return entry.entries
	}
	if entry, ok := registry.h2[name]; ok {
		return entry.entries
	}
	return -1
}

// Summaries reports every booked histogram sorted by name. The mean
// and spread of 1D histograms are computed from the bin contents, for
// 2D histograms they describe the x axis.
func (registry *HistogramRegistry) Summaries() []HistogramSummary {
	names := make([]string, 0, len(registry.h1)+len(registry.h2))
	names = append(names, maps.Keys(registry.h1)...)
	names = append(names, maps.Keys(registry.h2)...)
	sort.Strings(names)

	summaries := make([]HistogramSummary, 0, len(names))
	for _, name := range names {
		if entry, ok := registry.h1[name]; ok {
			centers := make([]float64, entry.hist.Len())
			weights := make([]float64, entry.hist.Len())
			for i := range centers {
				centers[i], weights[i] = entry.hist.XY(i)
			}
			summary := HistogramSummary{Name: name, Entries: entry.entries}
			if entry.entries > 0 {
				summary.Mean = stat.Mean(centers, weights)
				summary.StdDev = stat.StdDev(centers, weights)
			}
			summaries = append(summaries, summary)
			continue
		}
		entry := registry.h2[name]
		summary := HistogramSummary{Name: name, Entries: entry.entries}
		if entry.entries > 0 {
			n := float64(entry.entries)
			summary.Mean = entry.sumX / n
			if entry.entries > 1 {
				variance := (entry.sumX2 - entry.sumX*entry.sumX/n) / (n - 1)
				if variance > 0 {
					summary.StdDev = math.Sqrt(variance)
				}
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// SavePlots writes one plot per 1D histogram into plotDir. Slashes in
// histogram names turn into underscores.
func (registry *HistogramRegistry) SavePlots(plotDir string) error {
	names := maps.Keys(registry.h1)
	sort.Strings(names)
	for _, name := range names {
		entry := registry.h1[name]
		p, err := plot.New()
		if err != nil {
			return fmt.Errorf("error creating plot %s: %w", name, err)
		}
		p.Title.Text = name

		points := make(plotter.XYs, entry.hist.Len())
		for i := range points {
			points[i].X, points[i].Y = entry.hist.XY(i)
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("error creating plot %s: %w", name, err)
		}
		p.Add(line)

		filename := filepath.Join(plotDir, strings.ReplaceAll(name, "/", "_")+".png")
		err = p.Save(6*vg.Inch, 4*vg.Inch, filename)
		if err != nil {
			return fmt.Errorf("error saving plot %s: %w", filename, err)
		}
	}
	return nil
}

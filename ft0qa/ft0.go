package main

import (
	"math"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
)

const (
	nChannelsA  = 96
	nChannels   = 208
	bcsPerOrbit = 3564

	// Light travels 29.97 cm per ns, converts the A/C time difference
	// to a vertex position.
	sNS2Cm = 29.97

	// Side times outside +-12.5 ns belong to another bunch crossing.
	timeValid = 12.5
	emptyTime = -1e10
)

func bookFT0Histograms(registry *cffilter.HistogramRegistry) {
	registry.Book2D("FT0/AmpPerChannel", nChannels, 0, nChannels, 4200, -100, 4200)
	registry.Book2D("FT0/AmpPerChannel_VrtTrg", nChannels, 0, nChannels, 4200, -100, 4200)
	registry.Book1D("FT0/SumAmpA", 2000, 0, 2e5)
	registry.Book1D("FT0/SumAmpC", 2000, 0, 2e5)
	registry.Book2D("FT0/SumAmpAvsC", 2000, 0, 2e5, 2000, 0, 2e5)
	registry.Book2D("FT0/SumAmpAvsC_VrtTrg", 2000, 0, 2e5, 2000, 0, 2e5)
	registry.Book1D("FT0/Triggers", 8, 0, 8)
	registry.Book2D("FT0/TriggersPerBC", bcsPerOrbit, 0, bcsPerOrbit, 8, 0, 8)
	registry.Book2D("FT0/VrtVsCollTime", 1200, -200, 400, 1000, -20, 20)
	registry.Book2D("FT0/VrtVsCollTime_VrtTrg", 1200, -200, 400, 1000, -20, 20)
}

func fillFT0Histograms(registry *cffilter.HistogramRegistry, event *cffilter.Event) {
	ft0 := event.FT0
	if ft0 == nil {
		return
	}

	vertexTrigger := cffilter.TestBit(ft0.TriggerMask, cffilter.FT0_BIT_VERTEX)
	bcID := float64(event.GlobalBC % bcsPerOrbit)

	sumAmpA := 0.0
	for _, channel := range ft0.ChannelA {
		registry.Fill2D("FT0/AmpPerChannel", float64(channel.ChannelID), channel.Amplitude)
		if vertexTrigger {
			registry.Fill2D("FT0/AmpPerChannel_VrtTrg", float64(channel.ChannelID), channel.Amplitude)
		}
		sumAmpA += channel.Amplitude
	}

	sumAmpC := 0.0
	for _, channel := range ft0.ChannelC {
		// C-side channel numbering starts after the 96 A-side channels.
		id := float64(channel.ChannelID + nChannelsA)
		registry.Fill2D("FT0/AmpPerChannel", id, channel.Amplitude)
		if vertexTrigger {
			registry.Fill2D("FT0/AmpPerChannel_VrtTrg", id, channel.Amplitude)
		}
		sumAmpC += channel.Amplitude
	}

	registry.Fill("FT0/SumAmpA", sumAmpA)
	registry.Fill("FT0/SumAmpC", sumAmpC)
	registry.Fill2D("FT0/SumAmpAvsC", sumAmpA, sumAmpC)
	if vertexTrigger {
		registry.Fill2D("FT0/SumAmpAvsC_VrtTrg", sumAmpA, sumAmpC)
	}

	for bit := 0; bit < 8; bit++ {
		if cffilter.TestBit(ft0.TriggerMask, bit) {
			registry.Fill("FT0/Triggers", float64(bit))
			registry.Fill2D("FT0/TriggersPerBC", bcID, float64(bit))
		}
	}

	timeA := ft0.TimeA
	timeC := ft0.TimeC
	if len(ft0.ChannelA) == 0 {
		timeA = emptyTime
	}
	if len(ft0.ChannelC) == 0 {
		timeC = emptyTime
	}
	if math.Abs(timeA) < timeValid && math.Abs(timeC) < timeValid {
		collTime := (timeA + timeC) / 2
		vrtPos := (timeC - timeA) / 2 * sNS2Cm
		registry.Fill2D("FT0/VrtVsCollTime", vrtPos, collTime)
		if vertexTrigger {
			registry.Fill2D("FT0/VrtVsCollTime_VrtTrg", vrtPos, collTime)
		}
	}
}

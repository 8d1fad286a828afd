package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameGenerator_Grammar(t *testing.T) {
	gen := NewNameGenerator(42)

	prefixPattern := ""
	for i, p := range namePrefixes {
		if i > 0 {
			prefixPattern += "|"
		}
		prefixPattern += p
	}
	corePattern := ""
	for i, c := range nameCores {
		if i > 0 {
			corePattern += "|"
		}
		corePattern += c
	}
	suffixPattern := ""
	for i, s := range nameSuffixes {
		if i > 0 {
			suffixPattern += "|"
		}
		suffixPattern += s
	}

	grammar := regexp.MustCompile("^(" + prefixPattern + ")(" + corePattern + ")(" + suffixPattern + ")?$")

	for i := 0; i < 200; i++ {
		name := gen.Generate()
		assert.GreaterOrEqual(t, len(name), 1)
		assert.LessOrEqual(t, len(name), 50)
		assert.Regexp(t, grammar, name)
	}
}

func TestNameGenerator_DeterministicUnderFixedSeed(t *testing.T) {
	a := NewNameGenerator(7)
	b := NewNameGenerator(7)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("Available"))
	assert.True(t, ValidStatus("Deployed"))
	assert.True(t, ValidStatus("Destroyed"))
	assert.True(t, ValidStatus("Decommissioned"))
	assert.False(t, ValidStatus("available"))
	assert.False(t, ValidStatus("Broken"))
	assert.False(t, ValidStatus(""))
}

func TestRenderGadget_Destroyed(t *testing.T) {
	view := RenderGadget(&Gadget{ID: "g-1", Name: "NanoPulse", Status: StatusDestroyed})
	assert.Equal(t, "g-1", view.ID)
	assert.Equal(t, "NanoPulse is destroyed", view.Info)
}

func TestRenderGadget_Decommissioned(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2024-03-15T10:00:00Z")
	require.NoError(t, err)

	view := RenderGadget(&Gadget{
		ID:               "g-2",
		Name:             "SmartGearPro",
		Status:           StatusDecommissioned,
		DecommissionedAt: &ts,
	})
	assert.Equal(t, "SmartGearPro was decommissioned at Fri Mar 15 2024", view.Info)

	// A decommissioned gadget without a timestamp still renders.
	view = RenderGadget(&Gadget{ID: "g-3", Name: "UltraLensX", Status: StatusDecommissioned})
	assert.Equal(t, "UltraLensX was decommissioned at unknown date", view.Info)
}

func TestRenderGadget_Active(t *testing.T) {
	pattern := regexp.MustCompile(`^CyberWave360 - \d{1,2}% success probability$`)

	for _, status := range []GadgetStatus{StatusAvailable, StatusDeployed} {
		view := RenderGadget(&Gadget{ID: "g-4", Name: "CyberWave360", Status: status})
		assert.Regexp(t, pattern, view.Info)
	}
}

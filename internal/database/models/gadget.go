package models

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// GadgetStatus is the lifecycle state of a gadget.
type GadgetStatus string

const (
	StatusAvailable      GadgetStatus = "Available"
	StatusDeployed       GadgetStatus = "Deployed"
	StatusDestroyed      GadgetStatus = "Destroyed"
	StatusDecommissioned GadgetStatus = "Decommissioned"
)

// ValidStatus reports whether s is one of the known gadget statuses.
func ValidStatus(s string) bool {
	switch GadgetStatus(s) {
	case StatusAvailable, StatusDeployed, StatusDestroyed, StatusDecommissioned:
		return true
	}
	return false
}

// Gadget represents an inventory item. Names are generated server-side and
// never supplied by clients. DecommissionedAt is set exactly when the status
// is Decommissioned; the service layer stamps and clears it explicitly.
type Gadget struct {
	ID               string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string       `gorm:"size:50;not null" json:"name"`
	Status           GadgetStatus `gorm:"not null;default:Available" json:"status"`
	DecommissionedAt *time.Time   `json:"decommissioned_at,omitempty"`
	CreatedAt        time.Time    `json:"-"`
	UpdatedAt        time.Time    `json:"-"`
}

// TableName overrides the table name
func (Gadget) TableName() string {
	return "gadgets"
}

// Word lists for generated gadget names.
var (
	namePrefixes = []string{
		"Nano", "Smart", "Ultra", "Quantum", "Cyber", "Neuro", "Volt", "Hyper",
		"Auto", "Mega", "Zyro", "Giga", "Opti", "Echo", "Drift", "Xeno",
	}
	nameCores = []string{
		"Pulse", "Gear", "Lens", "Snap", "Loop", "Track", "Node", "Core",
		"Link", "Wave", "Spark", "Scope", "Bot", "Cast", "Blade", "Dock",
	}
	nameSuffixes = []string{
		"X", "Pro", "Max", "One", "360", "Go", "Plus", "Edge", "Mini", "Prime",
		"Flex", "Lite", "Jet", "Zoom", "Drive",
	}
)

// suffixProbability is the chance a generated name carries a suffix part.
const suffixProbability = 0.7

// NameGenerator produces randomized gadget names of the form
// prefix+core+optional suffix. Safe for concurrent use.
type NameGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNameGenerator creates a generator seeded with the given value, so name
// sequences are reproducible under a fixed seed.
func NewNameGenerator(seed int64) *NameGenerator {
	return &NameGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh gadget name.
func (g *NameGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	name := namePrefixes[g.rng.Intn(len(namePrefixes))] + nameCores[g.rng.Intn(len(nameCores))]
	if g.rng.Float64() < suffixProbability {
		name += nameSuffixes[g.rng.Intn(len(nameSuffixes))]
	}
	return name
}

// GadgetView is the client-facing rendering of a gadget. The info line
// depends on the status.
type GadgetView struct {
	ID   string `json:"id"`
	Info string `json:"info"`
}

// RenderGadget builds the view model for a gadget. Destroyed and
// decommissioned gadgets render their fate; active ones render a random
// mission success probability.
func RenderGadget(g *Gadget) GadgetView {
	switch g.Status {
	case StatusDestroyed:
		return GadgetView{ID: g.ID, Info: fmt.Sprintf("%s is destroyed", g.Name)}
	case StatusDecommissioned:
		dateText := "unknown date"
		if g.DecommissionedAt != nil {
			dateText = g.DecommissionedAt.Format("Mon Jan 2 2006")
		}
		return GadgetView{ID: g.ID, Info: fmt.Sprintf("%s was decommissioned at %s", g.Name, dateText)}
	default:
		return GadgetView{ID: g.ID, Info: fmt.Sprintf("%s - %d%% success probability", g.Name, rand.Intn(100))}
	}
}

// Package content provides read-only game content: enemies, rituals and
// dialogue lines.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Enemy is an enemy template.
type Enemy struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	HP        int      `yaml:"hp"`
	Attack    int      `yaml:"attack"`
	Defense   int      `yaml:"defense"`
	XP        int      `yaml:"xp"`
	Boss      bool     `yaml:"boss"`
	Theme     string   `yaml:"theme"`
	BattleCry string   `yaml:"battle-cry"`
	Defeat    string   `yaml:"defeat"`
	Attacks   []string `yaml:"attacks"`
}

// AttackMessage picks an attack line by index, wrapping around.
func (e Enemy) AttackMessage(i int) string {
	if len(e.Attacks) == 0 {
		return "attacks"
	}
	if i < 0 {
		i = -i
	}
	return e.Attacks[i%len(e.Attacks)]
}

// Ritual is a ritual incantation with its speed target.
type Ritual struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	TargetWPM   float64  `yaml:"target-wpm"`
	Tolerance   float64  `yaml:"tolerance"`
	Backlash    int      `yaml:"backlash"`
	Incantation []string `yaml:"incantation"`
}

// Dialogue holds reply lines for a conversation topic.
type Dialogue struct {
	Topic string   `yaml:"topic"`
	Lines []string `yaml:"lines"`
}

type catalogFile struct {
	Enemies   []Enemy    `yaml:"enemies"`
	Rituals   []Ritual   `yaml:"rituals"`
	Dialogues []Dialogue `yaml:"dialogues"`
}

// Catalog indexes content by identifier. It is never mutated after Load.
type Catalog struct {
	enemies   map[string]Enemy
	rituals   map[string]Ritual
	dialogues map[string]Dialogue
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c := newCatalog()
	if err := c.merge(defaultCatalogYAML); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return c, nil
}

// Load returns the embedded catalog with entries from path layered on top.
// An empty path or a missing file yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	if err := c.merge(data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

func newCatalog() *Catalog {
	return &Catalog{
		enemies:   make(map[string]Enemy),
		rituals:   make(map[string]Ritual),
		dialogues: make(map[string]Dialogue),
	}
}

func (c *Catalog) merge(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, e := range f.Enemies {
		if e.ID == "" {
			return fmt.Errorf("enemy %q has no id", e.Name)
		}
		if e.HP <= 0 {
			return fmt.Errorf("enemy %s: hp must be positive", e.ID)
		}
		c.enemies[e.ID] = e
	}
	for _, r := range f.Rituals {
		if r.ID == "" {
			return fmt.Errorf("ritual %q has no id", r.Name)
		}
		c.rituals[r.ID] = r
	}
	for _, d := range f.Dialogues {
		if d.Topic == "" {
			return errors.New("dialogue has no topic")
		}
		c.dialogues[d.Topic] = d
	}
	return nil
}

// Enemy looks up an enemy template.
func (c *Catalog) Enemy(id string) (Enemy, bool) {
	e, ok := c.enemies[id]
	return e, ok
}

// Ritual looks up a ritual.
func (c *Catalog) Ritual(id string) (Ritual, bool) {
	r, ok := c.rituals[id]
	return r, ok
}

// Dialogue looks up reply lines for a topic.
func (c *Catalog) Dialogue(topic string) (Dialogue, bool) {
	d, ok := c.dialogues[topic]
	return d, ok
}

// EnemyIDs returns all enemy identifiers sorted.
func (c *Catalog) EnemyIDs() []string {
	return sortedKeys(c.enemies)
}

// RitualIDs returns all ritual identifiers sorted.
func (c *Catalog) RitualIDs() []string {
	return sortedKeys(c.rituals)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

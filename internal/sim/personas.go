package sim

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dvloznov/cardsim/internal/logger"
	"github.com/dvloznov/cardsim/internal/profile"
)

// defaultHomeCountry is the cardholder home country for generated personas.
const defaultHomeCountry = "GB"

// ParsePersonaCounts expands a spec string like "commuter:10,student:5" into
// persona specs backed by the built-in profiles. User and card ids follow
// the USER_<PROFILE>_<n> / CARD_<PROFILE>_<n>_A convention, with each
// profile's numbering starting in its own thousand block.
func ParsePersonaCounts(spec string) ([]PersonaSpec, error) {
	return ParsePersonaCountsWith(spec, nil)
}

// ParsePersonaCountsWith is ParsePersonaCounts with extra named profiles
// (e.g. loaded from YAML) available alongside the built-ins. Extras shadow
// built-ins on name collision.
func ParsePersonaCountsWith(spec string, extras map[string]*profile.Profile) ([]PersonaSpec, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("sim: empty persona spec")
	}

	var out []PersonaSpec
	block := 0
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		name, countStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("sim: persona spec %q: want profile:count", part)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("sim: persona spec %q: bad count %q", part, countStr)
		}
		prof, ok := extras[name]
		if !ok {
			var err error
			prof, err = profile.ByName(name)
			if err != nil {
				return nil, err
			}
		}

		tag := strings.ToUpper(name)
		base := 1001 + block*1000
		for i := 0; i < count; i++ {
			out = append(out, PersonaSpec{
				UserID:      fmt.Sprintf("USER_%s_%d", tag, base+i),
				CardID:      fmt.Sprintf("CARD_%s_%d_A", tag, base+i),
				HomeCountry: defaultHomeCountry,
				Profile:     prof,
			})
		}
		block++
	}
	return out, nil
}

// NewSeededRNG creates a seeded random number generator. A zero seed picks
// one from the clock and logs it so the run can be reproduced.
func NewSeededRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
		log := logger.New()
		log.Info().Int64("seed", seed).Msg("no seed supplied, generated one")
	}
	return rand.New(rand.NewSource(seed)), seed
}

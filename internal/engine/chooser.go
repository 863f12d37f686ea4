package engine

// stickiness is the probability of returning to the remembered merchant for
// a category once one is established.
const stickiness = 0.8

// chooseMerchant picks a merchant id for the category. The first pick per
// category is uniform over the pool and becomes the remembered merchant;
// after that the remembered id is returned with probability stickiness, and
// otherwise a uniform pick over the remaining ids models the occasional
// defection. The remembered merchant itself never changes once set: the
// defection is a one-off, not a new loyalty.
//
// An empty pool yields no merchant and leaves the memory untouched.
func (p *Persona) chooseMerchant(cat string, ids []string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}

	remembered, ok := p.memory[cat]
	if !ok {
		id := ids[p.rng.Intn(len(ids))]
		p.memory[cat] = id
		return id, true
	}

	if len(ids) < 2 || p.rng.Float64() < stickiness {
		return remembered, true
	}

	others := make([]string, 0, len(ids)-1)
	for _, id := range ids {
		if id != remembered {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return remembered, true
	}
	return others[p.rng.Intn(len(others))], true
}

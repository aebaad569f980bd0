package bvcalc

import "fmt"

// forceBonuses adds the TAG and C3 bonuses that depend on the rest of the
// unit's side in the game.
func (s *state) forceBonuses(total float64) float64 {
	units := s.game.Units()
	if tag := s.tagBonus(units); tag > 0 {
		s.res.TagBonus = tag
		s.sink.Line("TAG Bonus", plus(tag)+" semi-guided ammo", total+tag)
		total += tag
	}
	if c3, members := s.c3Bonus(units); c3 > 0 {
		s.res.C3Bonus = c3
		s.sink.Line("C3 Bonus", fmt.Sprintf("+ %s (5%% of %d-unit network)", num(c3), members), total+c3)
		total += c3
	}
	return total
}

func friendly(u, other *Unit) bool {
	return other != nil && other != u && !other.Destroyed && other.Team == u.Team
}

// tagBonus is the value of the unit's semi-guided ammunition when another
// unit on its side can designate with TAG.
func (s *state) tagBonus(units []*Unit) float64 {
	u := s.unit
	spotted := false
	for _, o := range units {
		if friendly(u, o) && o.hasWorking(FlagTAG) {
			spotted = true
			break
		}
	}
	if !spotted {
		return 0
	}
	var bonus float64
	for _, m := range u.Mounts {
		if ammoUsable(m) && m.Type.Has(FlagSemiGuided) {
			bonus += ammoValue(u, m)
		}
	}
	return bonus
}

func inC3(u *Unit) bool {
	return u.C3Network != "" && u.hasWorking(FlagC3)
}

// c3Bonus is 5% of the network's combined base BV. Other members are
// scored without force bonuses or skill.
func (s *state) c3Bonus(units []*Unit) (float64, int) {
	u := s.unit
	if !inC3(u) {
		return 0, 0
	}
	network := float64(s.res.BaseBV)
	members := 1
	for _, o := range units {
		if !friendly(u, o) || o.C3Network != u.C3Network || !inC3(o) {
			continue
		}
		network += float64(New(o, WithLogger(s.log)).Calculate(true, true).BV)
		members++
	}
	if members < 2 {
		return 0, members
	}
	return network * 0.05, members
}

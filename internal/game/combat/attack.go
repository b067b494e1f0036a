package combat

import "fmt"

// BasicAttack strikes target with the equipped weapon and describes the result.
//
// Without enough stamina for the weapon nothing changes. Otherwise the attacker
// pays the weapon cost and rolls weapon damage scaled by its class attack. If the
// target can pay its armor upkeep (armor cost scaled by its class stamina
// multiplier) it does so and the armor defence, scaled by its class armor
// multiplier, is subtracted; otherwise the armor is ignored for this hit. The
// result is rounded to one decimal place and applied only when positive.
//
// Precondition: both fighters have weapon and armor equipped.
func (c *Combatant) BasicAttack(target *Combatant) string {
	c.mustBeReady()
	target.mustBeReady()

	if c.CurrentStamina < c.weapon.StaminaPerHit {
		return fmt.Sprintf("%s tried to use %s, but did not have enough stamina.", c.name, c.weapon.Name)
	}
	damage := c.strike(target)
	if damage > 0 {
		if c.role == RoleOpponent {
			return fmt.Sprintf("%s, using %s, pierces your %s and deals %g damage.",
				c.name, c.weapon.Name, target.armor.Name, damage)
		}
		return fmt.Sprintf("%s, using %s, pierces the opponent's %s and deals %g damage.",
			c.name, c.weapon.Name, target.armor.Name, damage)
	}
	if c.role == RoleOpponent {
		return fmt.Sprintf("%s strikes you with %s, but your %s stops the blow.",
			c.name, c.weapon.Name, target.armor.Name)
	}
	return fmt.Sprintf("%s strikes with %s, but the opponent's %s stops the blow.",
		c.name, c.weapon.Name, target.armor.Name)
}

// strike performs the stamina and health arithmetic of a basic attack and
// returns the computed damage, which may be zero or negative.
func (c *Combatant) strike(target *Combatant) float64 {
	c.CurrentStamina -= c.weapon.StaminaPerHit
	damage := c.weapon.Damage(c.roller) * c.class.Attack

	upkeep := target.armor.StaminaPerTurn * target.class.Stamina
	if target.CurrentStamina >= upkeep {
		target.CurrentStamina -= upkeep
		damage -= target.armor.Defence * target.class.Armor
	}
	damage = roundTenth(damage)
	if damage > 0 {
		target.CurrentHP -= damage
	}
	return damage
}

// UseSkillOnce attempts the class skill against target. Only the first attempt
// per match does anything; the flag is consumed even when the skill fails for
// lack of stamina.
//
// Postcondition: SkillUsed() is true.
func (c *Combatant) UseSkillOnce(target *Combatant) string {
	if c.skillUsed {
		return MsgSkillAlreadyUsed
	}
	result := c.class.Skill.Use(c, target)
	c.skillUsed = true
	return result
}

// TakeTurn runs the opponent's autonomous decision: use the skill if it is
// unused, affordable at its listed cost, and a percentile roll is below
// SkillTriggerThreshold; otherwise make a basic attack. The player role always
// makes a basic attack.
func (c *Combatant) TakeTurn(target *Combatant) string {
	if c.role == RoleOpponent &&
		!c.skillUsed &&
		c.CurrentStamina >= c.class.Skill.Stamina &&
		c.roller.Percent() < SkillTriggerThreshold {
		return c.UseSkillOnce(target)
	}
	return c.BasicAttack(target)
}

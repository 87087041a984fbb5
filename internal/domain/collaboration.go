package domain

var collaborationTransitions = map[CollaborationStatus][]CollaborationStatus{
	CollaborationBrouillon: {CollaborationEnCours, CollaborationAnnulee},
	CollaborationEnCours:   {CollaborationTerminee, CollaborationAnnulee},
}

// CanTransition reports whether from -> to is an edge of the collaboration lifecycle.
func (s CollaborationStatus) CanTransition(to CollaborationStatus) bool {
	for _, next := range collaborationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition exists.
func (s CollaborationStatus) IsTerminal() bool {
	return len(collaborationTransitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollaborationBrouillon, CollaborationEnCours, CollaborationTerminee, CollaborationAnnulee:
		return true
	}
	return false
}

// PartyForRole maps a user role to its collaboration side.
func PartyForRole(role UserRole) (CollaborationParty, bool) {
	switch role {
	case RoleEcole:
		return PartyEcole, true
	case RoleIntervenant:
		return PartyIntervenant, true
	}
	return "", false
}

// CanEdit is true only while the collaboration is a draft.
func (c *Collaboration) CanEdit() bool {
	return c.Status == CollaborationBrouillon
}

// CanDelete requires a draft created by the caller's side.
func (c *Collaboration) CanDelete(party CollaborationParty) bool {
	return c.Status == CollaborationBrouillon && c.CreatedBy == party
}

// ValidatedBy returns the flag of the given side.
func (c *Collaboration) ValidatedBy(party CollaborationParty) bool {
	if party == PartyEcole {
		return c.ValidatedByEcole
	}
	return c.ValidatedByIntervenant
}

// FullyValidated reports whether both sides accepted the terms.
func (c *Collaboration) FullyValidated() bool {
	return c.ValidatedByEcole && c.ValidatedByIntervenant
}

// Validate sets the caller's flag. The collaboration is left unchanged on error.
func (c *Collaboration) Validate(party CollaborationParty) error {
	if c.Status != CollaborationBrouillon {
		return ErrNotEditable
	}
	if c.ValidatedBy(party) {
		return ErrAlreadyValidated
	}
	if party == PartyEcole {
		c.ValidatedByEcole = true
	} else {
		c.ValidatedByIntervenant = true
	}
	return nil
}

// CheckTransition validates a status change, including the double validation gate
// in front of en_cours.
func (c *Collaboration) CheckTransition(to CollaborationStatus) error {
	if !c.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	if c.Status == CollaborationBrouillon && to == CollaborationEnCours && !c.FullyValidated() {
		return ErrValidationsIncomplete
	}
	return nil
}

// CollaborationView adds the caller-specific action flags.
type CollaborationView struct {
	*Collaboration
	CanEdit     bool `json:"can_edit"`
	CanDelete   bool `json:"can_delete"`
	CanValidate bool `json:"can_validate"`
}

// ViewFor computes the actions open to party.
func (c *Collaboration) ViewFor(party CollaborationParty) CollaborationView {
	return CollaborationView{
		Collaboration: c,
		CanEdit:       c.CanEdit() && party != "",
		CanDelete:     c.CanDelete(party),
		CanValidate:   c.CanEdit() && party != "" && !c.ValidatedBy(party),
	}
}

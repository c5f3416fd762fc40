package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
)

// ListParties handles GET /api/parties?matterId=
func (h *Handlers) ListParties(c *gin.Context) {
	matterID := c.Query("matterId")
	if matterID == "" {
		RespondBadRequest(c, "matterId query parameter is required")
		return
	}

	parties, err := db.ListParties(matterID)
	if err != nil {
		RespondInternalError(c, "failed to list parties")
		return
	}

	RespondList(c, parties, nil)
}

// GetParty handles GET /api/parties/:id
func (h *Handlers) GetParty(c *gin.Context) {
	party, err := db.GetParty(c.Param("id"))
	if err != nil {
		RespondInternalError(c, "failed to load party")
		return
	}
	if party == nil {
		RespondNotFound(c, "party not found")
		return
	}

	RespondData(c, party)
}

type partyRequest struct {
	MatterID string  `json:"matterId"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Contact  *string `json:"contact"`
}

func validPartyRole(role string) bool {
	switch role {
	case db.PartyRolePetitioner, db.PartyRoleRespondent, db.PartyRoleWitness, db.PartyRoleAdvocate:
		return true
	}
	return false
}

// CreateParty handles POST /api/parties
func (h *Handlers) CreateParty(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.MatterID == "" || req.Name == "" {
		RespondValidationError(c, "matterId and name are required", nil)
		return
	}
	if !validPartyRole(req.Role) {
		RespondValidationError(c, "role must be one of petitioner, respondent, witness, advocate", nil)
		return
	}

	party, err := db.CreateParty(req.MatterID, req.Name, req.Role, req.Contact)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "matter not found")
			return
		}
		RespondInternalError(c, "failed to create party")
		return
	}

	h.notif.NotifyMatterChanged(req.MatterID, "party-added")
	RespondCreated(c, party, "")
}

// UpdateParty handles PUT /api/parties/:id
func (h *Handlers) UpdateParty(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		RespondValidationError(c, "name is required", nil)
		return
	}
	if !validPartyRole(req.Role) {
		RespondValidationError(c, "role must be one of petitioner, respondent, witness, advocate", nil)
		return
	}

	party, err := db.UpdateParty(c.Param("id"), req.Name, req.Role, req.Contact)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "party not found")
			return
		}
		RespondInternalError(c, "failed to update party")
		return
	}

	h.notif.NotifyMatterChanged(party.MatterID, "party-updated")
	RespondData(c, party)
}

// DeleteParty handles DELETE /api/parties/:id
func (h *Handlers) DeleteParty(c *gin.Context) {
	if err := db.DeleteParty(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "party not found")
			return
		}
		RespondInternalError(c, "failed to delete party")
		return
	}

	RespondNoContent(c)
}

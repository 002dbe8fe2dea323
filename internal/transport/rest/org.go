package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/org"
)

type orgService interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (domain.Team, error)
	CreateTeam(ctx context.Context, input org.CreateTeamInput) (domain.Team, error)
	UpdateTeam(ctx context.Context, input org.UpdateTeamInput) (domain.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error

	ListMembers(ctx context.Context, input org.ListMembersInput) ([]domain.Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (domain.Member, error)
	CreateMember(ctx context.Context, input org.CreateMemberInput) (domain.Member, error)
	UpdateMember(ctx context.Context, input org.UpdateMemberInput) (domain.Member, error)
	DeleteMember(ctx context.Context, id uuid.UUID) (org.MemberDeletion, error)
}

// OrgHandler serves teams and members.
type OrgHandler struct {
	svc orgService
	log *slog.Logger
}

// NewOrgHandler creates an OrgHandler.
func NewOrgHandler(svc orgService, logger *slog.Logger) *OrgHandler {
	return &OrgHandler{svc: svc, log: logger.With("handler", "org")}
}

// ListTeams handles GET /api/teams.
func (h *OrgHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// GetTeam handles GET /api/teams/{id}.
func (h *OrgHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	team, err := h.svc.GetTeam(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// CreateTeam handles POST /api/teams.
func (h *OrgHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var in org.CreateTeamInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	team, err := h.svc.CreateTeam(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// UpdateTeam handles PUT /api/teams/{id}.
func (h *OrgHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in org.UpdateTeamInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	team, err := h.svc.UpdateTeam(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/teams/{id}.
func (h *OrgHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteTeam(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /api/members?teamId=&status=.
func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	in := org.ListMembersInput{
		TeamID: q.uuid("teamId"),
		Status: domain.MemberStatus(q.str("status")),
	}
	if err := q.err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	members, err := h.svc.ListMembers(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GetMember handles GET /api/members/{id}.
func (h *OrgHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	member, err := h.svc.GetMember(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// CreateMember handles POST /api/members.
func (h *OrgHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var in org.CreateMemberInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	member, err := h.svc.CreateMember(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// UpdateMember handles PUT /api/members/{id}.
func (h *OrgHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var in org.UpdateMemberInput
	if err := decode(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in.ID = id
	member, err := h.svc.UpdateMember(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// DeleteMember handles DELETE /api/members/{id}. The response lists what
// was removed or detached along with the member.
func (h *OrgHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	deleted, err := h.svc.DeleteMember(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

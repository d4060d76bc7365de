package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cricmates/backend/internal/config"
	"cricmates/backend/internal/domain/club"
	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/members"
	"cricmates/backend/internal/domain/requests"
	"cricmates/backend/internal/domain/stats"
	"cricmates/backend/internal/domain/subscription"
	"cricmates/backend/internal/domain/tournaments"
	"cricmates/backend/internal/domain/transactions"
	"cricmates/backend/internal/middleware"
	"cricmates/backend/internal/platform"
	"cricmates/backend/internal/session"
	"cricmates/backend/internal/storage"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

type RouterDeps struct {
	Cfg            config.Config
	AuthClient     *auth.Client
	Sessions       session.Store
	Resolver       *club.Resolver
	ClubSvc        *club.Service
	SubSvc         *subscription.Service
	Checkout       *subscription.Checkout
	MembersSvc     *members.Service
	MatchesSvc     *matches.Service
	TxSvc          *transactions.Service
	RequestsSvc    *requests.Service
	Watcher        *requests.Watcher
	TournamentsSvc *tournaments.Service
	StatsSvc       *stats.Service
	Blobs          *storage.Service
	Settings       platform.Settings
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.WithSession)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Stripe webhook (signature-verified, no auth) =====
	if d.Checkout != nil {
		r.Post("/v1/stripe/webhook", d.Checkout.HandleWebhook)
	}

	// ===== Public routes =====

	// Resolve the active club for this visitor: subdomain, then ?club=,
	// then the stored session preference.
	r.Get("/v1/resolve", func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Resolver.Resolve(r.Context(), club.ResolveInput{
			Host:        r.Host,
			QueryClubID: strings.TrimSpace(r.URL.Query().Get("club")),
			SessionID:   middleware.SessionID(r.Context()),
		})
		if err != nil {
			status, msg := mapClubError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, map[string]any{
			"club":       res.Club,
			"source":     res.Source,
			"theme":      res.Theme.CSSVariables(),
			"stripQuery": res.StripQuery,
		})
	})

	// Persist a manual club choice for this session.
	r.Post("/v1/session/club", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ClubID string `json:"clubId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ClubID == "" {
			Fail(w, 400, "clubId is required")
			return
		}
		res, err := d.Resolver.Select(r.Context(), middleware.SessionID(r.Context()), body.ClubID)
		if err != nil {
			status, msg := mapClubError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, map[string]any{
			"club":   res.Club,
			"source": res.Source,
			"theme":  res.Theme.CSSVariables(),
		})
	})

	r.Delete("/v1/session/club", func(w http.ResponseWriter, r *http.Request) {
		clubID := strings.TrimSpace(r.URL.Query().Get("clubId"))
		d.Resolver.Clear(middleware.SessionID(r.Context()), clubID)
		WriteJSON(w, 200, map[string]any{"ok": true})
	})

	r.Get("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		out, err := d.ClubSvc.List(r.Context(), limit)
		if err != nil {
			status, msg := mapClubError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, map[string]any{"clubs": out})
	})

	r.Get("/v1/clubs/{clubId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ClubSvc.Get(r.Context(), chi.URLParam(r, "clubId"))
		if err != nil {
			status, msg := mapClubError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/platform/settings", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, d.Settings)
	})

	// Public join request form.
	r.Post("/v1/clubs/{clubId}/requests", func(w http.ResponseWriter, r *http.Request) {
		var in requests.SubmitRequestInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.RequestsSvc.Submit(r.Context(), chi.URLParam(r, "clubId"), in)
		if err != nil {
			status, msg := mapRequestsError(err)
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 201, out)
	})

	// Club admin login: bcrypt check, then the admin flag is stored
	// against the session.
	r.Post("/v1/clubs/{clubId}/admin/verify", func(w http.ResponseWriter, r *http.Request) {
		clubID := chi.URLParam(r, "clubId")
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if err := d.ClubSvc.VerifyAdminPassword(r.Context(), clubID, body.Password); err != nil {
			status, msg := mapClubError(err)
			Fail(w, status, msg)
			return
		}
		if sid := middleware.SessionID(r.Context()); sid != "" {
			d.Sessions.Set(sid, session.AdminKey(clubID), "1")
		}
		WriteJSON(w, 200, map[string]any{"ok": true})
	})

	// SSE stream of request-collection changes. Events are coalesced
	// signals; the client re-fetches the list on each one.
	if d.Watcher != nil {
		r.Get("/v1/clubs/{clubId}/requests/stream", func(w http.ResponseWriter, r *http.Request) {
			flusher, ok := w.(http.Flusher)
			if !ok {
				Fail(w, 500, "streaming unsupported")
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(200)
			flusher.Flush()

			events, stop := d.Watcher.Subscribe(r.Context(), chi.URLParam(r, "clubId"))
			defer stop()

			for ev := range events {
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		})
	}

	// ===== Protected routes =====
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			WriteJSON(w, 200, map[string]any{
				"uid":    au.UID,
				"email":  au.Email,
				"claims": au.Claims,
			})
		})

		// ===== Club management =====
		pr.Post("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
			var in club.CreateClubInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.ClubSvc.Create(r.Context(), in)
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Put("/v1/clubs/{clubId}", func(w http.ResponseWriter, r *http.Request) {
			var in club.UpdateClubInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.ClubSvc.Update(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs/{clubId}/admin/password", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			if err := d.ClubSvc.SetAdminPassword(r.Context(), chi.URLParam(r, "clubId"), body.Password); err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Subscription =====
		pr.Get("/v1/clubs/{clubId}/subscription", func(w http.ResponseWriter, r *http.Request) {
			c, err := d.ClubSvc.Get(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			if _, err := d.SubSvc.Reconcile(r.Context(), c); err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{
				"status":    c.SubscriptionStatus,
				"expiresAt": c.SubscriptionExpiresAt,
				"summary":   d.SubSvc.Summarize(c),
			})
		})

		pr.Post("/v1/clubs/{clubId}/subscription/payments", func(w http.ResponseWriter, r *http.Request) {
			var in subscription.RecordPaymentInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.SubSvc.RecordPayment(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/subscription/orders", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.SubSvc.ListOrders(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"orders": out})
		})

		// Platform billing view across all clubs.
		pr.Get("/v1/admin/orders", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsSuperAdmin(au.Claims) {
				Fail(w, 403, "super admin required")
				return
			}
			limit := 100
			if s := r.URL.Query().Get("limit"); s != "" {
				if n, err := strconv.Atoi(s); err == nil && n > 0 {
					limit = n
				}
			}
			out, err := d.SubSvc.ListAllOrders(r.Context(), limit)
			if err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"orders": out})
		})

		if d.Checkout != nil {
			pr.Post("/v1/clubs/{clubId}/subscription/checkout", func(w http.ResponseWriter, r *http.Request) {
				var in subscription.CreateCheckoutInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				url, err := d.Checkout.CreateSession(r.Context(), chi.URLParam(r, "clubId"), in)
				if err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"url": url})
			})
		}

		// ===== Members =====
		pr.Get("/v1/clubs/{clubId}/members", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MembersSvc.List(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"members": out})
		})

		pr.Post("/v1/clubs/{clubId}/members", func(w http.ResponseWriter, r *http.Request) {
			var in members.CreateMemberInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MembersSvc.Create(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MembersSvc.Get(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId"))
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/clubs/{clubId}/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
			var in members.UpdateMemberInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MembersSvc.Update(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId"), in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/clubs/{clubId}/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
			memberID := chi.URLParam(r, "memberId")
			if err := d.MembersSvc.Delete(r.Context(), chi.URLParam(r, "clubId"), memberID); err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "deleted": memberID})
		})

		pr.Post("/v1/clubs/{clubId}/members/{memberId}/funds/add", func(w http.ResponseWriter, r *http.Request) {
			var in members.FundsInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MembersSvc.AddFunds(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId"), in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs/{clubId}/members/{memberId}/funds/deduct", func(w http.ResponseWriter, r *http.Request) {
			var in members.FundsInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MembersSvc.DeductFunds(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId"), in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs/{clubId}/members/{memberId}/avatar", func(w http.ResponseWriter, r *http.Request) {
			data, contentType, ext, err := readUpload(r)
			if err != nil {
				Fail(w, 400, err.Error())
				return
			}
			url, err := d.MembersSvc.UploadAvatar(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId"), data, contentType, ext)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"avatarUrl": url})
		})

		pr.Delete("/v1/clubs/{clubId}/members/{memberId}/avatar", func(w http.ResponseWriter, r *http.Request) {
			if err := d.MembersSvc.RemoveAvatar(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "memberId")); err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Matches =====
		pr.Get("/v1/clubs/{clubId}/matches", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MatchesSvc.List(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"matches": out})
		})

		pr.Post("/v1/clubs/{clubId}/matches", func(w http.ResponseWriter, r *http.Request) {
			var in matches.CreateMatchInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MatchesSvc.Create(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/matches/{matchId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MatchesSvc.Get(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "matchId"))
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/clubs/{clubId}/matches/{matchId}", func(w http.ResponseWriter, r *http.Request) {
			var in matches.UpdateMatchInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MatchesSvc.Update(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "matchId"), in)
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs/{clubId}/matches/{matchId}/result", func(w http.ResponseWriter, r *http.Request) {
			var in matches.ResultInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.MatchesSvc.UpdateResult(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "matchId"), in)
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/clubs/{clubId}/matches/{matchId}", func(w http.ResponseWriter, r *http.Request) {
			matchID := chi.URLParam(r, "matchId")
			if err := d.MatchesSvc.Delete(r.Context(), chi.URLParam(r, "clubId"), matchID); err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "deleted": matchID})
		})

		// ===== Match photos =====
		pr.Post("/v1/clubs/{clubId}/matches/{matchId}/photos", func(w http.ResponseWriter, r *http.Request) {
			data, contentType, ext, err := readUpload(r)
			if err != nil {
				Fail(w, 400, err.Error())
				return
			}
			caption := r.FormValue("caption")
			out, err := d.MatchesSvc.UploadPhoto(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "matchId"), data, contentType, ext, caption)
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/photos", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MatchesSvc.ListPhotos(r.Context(), chi.URLParam(r, "clubId"), r.URL.Query().Get("matchId"))
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"photos": out})
		})

		pr.Delete("/v1/clubs/{clubId}/photos/{photoId}", func(w http.ResponseWriter, r *http.Request) {
			if err := d.MatchesSvc.DeletePhoto(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "photoId")); err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		pr.Post("/v1/clubs/{clubId}/photos/cleanup", func(w http.ResponseWriter, r *http.Request) {
			removed, err := d.MatchesSvc.CleanupOldPhotos(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapMatchesError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"removed": removed})
		})

		// ===== Transactions =====
		pr.Get("/v1/clubs/{clubId}/transactions", func(w http.ResponseWriter, r *http.Request) {
			in := transactions.ListTransactionsInput{
				MemberID: r.URL.Query().Get("memberId"),
				Type:     r.URL.Query().Get("type"),
			}
			if s := r.URL.Query().Get("limit"); s != "" {
				if n, err := strconv.Atoi(s); err == nil {
					in.Limit = n
				}
			}
			out, err := d.TxSvc.List(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapTransactionsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"transactions": out})
		})

		pr.Post("/v1/clubs/{clubId}/transactions", func(w http.ResponseWriter, r *http.Request) {
			var in transactions.AddTransactionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.TxSvc.Add(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapTransactionsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Delete("/v1/clubs/{clubId}/transactions/{txId}", func(w http.ResponseWriter, r *http.Request) {
			if err := d.TxSvc.Delete(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "txId")); err != nil {
				status, msg := mapTransactionsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Member requests (admin side) =====
		pr.Get("/v1/clubs/{clubId}/requests", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.RequestsSvc.List(r.Context(), chi.URLParam(r, "clubId"), r.URL.Query().Get("status"))
			if err != nil {
				status, msg := mapRequestsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"requests": out})
		})

		pr.Post("/v1/clubs/{clubId}/requests/{requestId}/approve", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.RequestsSvc.Approve(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapRequestsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"member": out})
		})

		pr.Post("/v1/clubs/{clubId}/requests/{requestId}/reject", func(w http.ResponseWriter, r *http.Request) {
			if err := d.RequestsSvc.Reject(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "requestId")); err != nil {
				status, msg := mapRequestsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		pr.Delete("/v1/clubs/{clubId}/requests/{requestId}", func(w http.ResponseWriter, r *http.Request) {
			if err := d.RequestsSvc.Delete(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "requestId")); err != nil {
				status, msg := mapRequestsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Tournaments =====
		pr.Get("/v1/clubs/{clubId}/tournaments", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.TournamentsSvc.List(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"tournaments": out})
		})

		pr.Post("/v1/clubs/{clubId}/tournaments", func(w http.ResponseWriter, r *http.Request) {
			var in tournaments.CreateTournamentInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.TournamentsSvc.Create(r.Context(), chi.URLParam(r, "clubId"), in)
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/tournaments/{tournamentId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.TournamentsSvc.Get(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "tournamentId"))
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/clubs/{clubId}/tournaments/{tournamentId}", func(w http.ResponseWriter, r *http.Request) {
			var in tournaments.UpdateTournamentInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			out, err := d.TournamentsSvc.Update(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "tournamentId"), in)
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/clubs/{clubId}/tournaments/{tournamentId}", func(w http.ResponseWriter, r *http.Request) {
			if err := d.TournamentsSvc.Delete(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "tournamentId")); err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		pr.Post("/v1/clubs/{clubId}/tournaments/{tournamentId}/matches/{matchId}", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Stage string `json:"stage"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			err := d.TournamentsSvc.LinkMatch(r.Context(),
				chi.URLParam(r, "clubId"), chi.URLParam(r, "tournamentId"), chi.URLParam(r, "matchId"), body.Stage)
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		pr.Delete("/v1/clubs/{clubId}/tournaments/{tournamentId}/matches/{matchId}", func(w http.ResponseWriter, r *http.Request) {
			err := d.TournamentsSvc.UnlinkMatch(r.Context(),
				chi.URLParam(r, "clubId"), chi.URLParam(r, "tournamentId"), chi.URLParam(r, "matchId"))
			if err != nil {
				status, msg := mapTournamentsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Stats =====
		pr.Get("/v1/clubs/{clubId}/stats", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.StatsSvc.Dashboard(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapStatsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/clubs/{clubId}/stats/members", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.StatsSvc.MemberActivityList(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapStatsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"members": out})
		})

		// ===== Direct uploads =====
		if d.Blobs != nil {
			pr.Post("/v1/uploads/signed-url", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					ObjectPath     string `json:"objectPath"`
					ContentType    string `json:"contentType,omitempty"`
					ExpiresSeconds int64  `json:"expiresSeconds,omitempty"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ObjectPath == "" {
					Fail(w, 400, "objectPath is required")
					return
				}
				url, exp, err := d.Blobs.SignedUploadURL(r.Context(), body.ObjectPath, body.ContentType, body.ExpiresSeconds)
				if err != nil {
					Fail(w, 400, err.Error())
					return
				}
				WriteJSON(w, 200, map[string]any{"url": url, "method": "PUT", "expiresAt": exp.Unix()})
			})
		}
	})

	return r
}

// readUpload pulls the "file" part out of a multipart form.
func readUpload(r *http.Request) (data []byte, contentType, ext string, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", "", fmt.Errorf("invalid multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", fmt.Errorf("file field is required")
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read file")
	}
	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ext = strings.ToLower(filepath.Ext(header.Filename))
	return data, contentType, ext, nil
}

func mapClubError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case club.IsErrUnauthorized(err):
		return 401, err.Error()
	case club.IsErrNoClub(err):
		return 404, err.Error()
	case club.IsErrNotFound(err):
		return 404, err.Error()
	case club.IsErrShortNameTaken(err):
		return 409, err.Error()
	case club.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapSubscriptionError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case subscription.IsErrNotFound(err):
		return 404, err.Error()
	case subscription.IsErrBadRequest(err):
		return 400, err.Error()
	case club.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMembersError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case members.IsErrNotFound(err):
		return 404, err.Error()
	case members.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMatchesError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case matches.IsErrNotFound(err):
		return 404, err.Error()
	case matches.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapTransactionsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case transactions.IsErrNotFound(err):
		return 404, err.Error()
	case transactions.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapRequestsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case requests.IsErrNotFound(err):
		return 404, err.Error()
	case requests.IsErrResolved(err):
		return 409, err.Error()
	case requests.IsErrBadRequest(err):
		return 400, err.Error()
	case members.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapTournamentsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case tournaments.IsErrNotFound(err):
		return 404, err.Error()
	case tournaments.IsErrBadRequest(err):
		return 400, err.Error()
	case matches.IsErrNotFound(err):
		return 404, err.Error()
	case matches.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapStatsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case stats.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

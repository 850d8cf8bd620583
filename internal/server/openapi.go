package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Globetrotter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Globetrotter travel guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/destinations
	getDestinations, _ := r.NewOperationContext(http.MethodGet, "/api/destinations")
	getDestinations.SetSummary("List destinations")
	getDestinations.SetDescription("Returns the full destination catalog.")
	getDestinations.AddRespStructure([]DestinationPayload{}, openapi.WithHTTPStatus(http.StatusOK))
	getDestinations.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(getDestinations)

	// POST /api/games
	postGames, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGames.SetSummary("Start a game")
	postGames.SetDescription("Starts a 10-question session, optionally against a shared challenge. Returns the session token and the first question.")
	postGames.AddReqStructure(StartGameRequest{})
	postGames.AddRespStructure(StartGameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postGames)

	// GET /api/games/{token}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{token}")
	getGame.SetSummary("Get game state")
	getGame.SetDescription("Returns the current score, question, and challenge context.")
	getGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// POST /api/games/{token}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{token}/answer")
	postAnswer.SetSummary("Submit an answer")
	postAnswer.SetDescription("Submits one of the current question's options. Returns the result, a fun fact, and the next question or the final outcome.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postAnswer)

	// POST /api/games/{token}/restart
	postRestart, _ := r.NewOperationContext(http.MethodPost, "/api/games/{token}/restart")
	postRestart.SetSummary("Restart a game")
	postRestart.SetDescription("Resets the session score and deals a fresh first question.")
	postRestart.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRestart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postRestart)

	// GET /api/users
	getUsers, _ := r.NewOperationContext(http.MethodGet, "/api/users")
	getUsers.SetSummary("Check username availability")
	getUsers.SetDescription("Advisory availability check. The authoritative decision happens at reservation time.")
	getUsers.AddRespStructure(AvailabilityResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getUsers)

	// POST /api/users
	postUsers, _ := r.NewOperationContext(http.MethodPost, "/api/users")
	postUsers.SetSummary("Reserve a username")
	postUsers.SetDescription("Claims a username (or updates a returning player) and records the finished game, returning the shareable challenge id.")
	postUsers.AddReqStructure(ReserveRequest{})
	postUsers.AddRespStructure(ReserveResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postUsers)

	// GET /api/challenges/{id}
	getChallenge, _ := r.NewOperationContext(http.MethodGet, "/api/challenges/{id}")
	getChallenge.SetSummary("Look up a challenge")
	getChallenge.SetDescription("Resolves a shared challenge id to the challenger's score and identity.")
	getChallenge.AddRespStructure(ChallengeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getChallenge)

	// GET /api/challenges/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/challenges/{id}/events")
	getEvents.SetSummary("Challenge attempt stream")
	getEvents.SetDescription("Server-Sent Events stream of attempts played against this challenge.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the authenticated admin account.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/destinations
	getAdminDest, _ := r.NewOperationContext(http.MethodGet, "/api/admin/destinations")
	getAdminDest.SetSummary("List destinations (admin)")
	getAdminDest.AddRespStructure([]DestinationPayload{}, openapi.WithHTTPStatus(http.StatusOK))
	getAdminDest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getAdminDest)

	// POST /api/admin/destinations
	postAdminDest, _ := r.NewOperationContext(http.MethodPost, "/api/admin/destinations")
	postAdminDest.SetSummary("Create destination")
	postAdminDest.AddReqStructure(AdminDestinationRequest{})
	postAdminDest.AddRespStructure(DestinationPayload{}, openapi.WithHTTPStatus(http.StatusCreated))
	postAdminDest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAdminDest)

	// DELETE /api/admin/destinations/{id}
	delAdminDest, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/destinations/{id}")
	delAdminDest.SetSummary("Delete destination")
	delAdminDest.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	delAdminDest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(delAdminDest)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}

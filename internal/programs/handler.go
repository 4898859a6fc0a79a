package programs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

type ListResponse struct {
	AvailablePrograms []string `json:"available_programs"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/training-programs", handler.HandleList).Methods("GET", "OPTIONS").Name("training-programs")
	r.HandleFunc("/training-programs/{goal}", handler.HandleDownload).Methods("GET", "OPTIONS").Name("download-training-program")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	available, err := handler.catalog.Available()
	if err != nil {
		log.Errorf("failed to list training programs: %s", err)
		http.Error(w, "failed to list training programs", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		AvailablePrograms: available,
	})
	if err != nil {
		log.Errorf("failed to marshal training programs: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.download")
	defer span.End()

	goal := mux.Vars(r)["goal"]
	file, err := handler.catalog.Open(goal)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "training program not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to open training program [%s]: %s", goal, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", pkg.ContentType.PDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", goal))
	if _, err := io.Copy(w, file); err != nil {
		log.Errorf("failed to send training program [%s]: %s", goal, err)
	}
}

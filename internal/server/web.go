// Package server is the web front-end: an upload form, the scan endpoint,
// and a read-only contacts listing. All pipeline errors are converted into a
// rendered page here; nothing terminates the process.
package server

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/vizitka/card-scanner/constants"
	"github.com/vizitka/card-scanner/internal/scan"
	"github.com/vizitka/card-scanner/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Processor is the slice of the orchestrator the web surface needs.
type Processor interface {
	ProcessBytes(ctx context.Context, data []byte, filename string) (scan.Result, error)
}

type Server struct {
	proc    Processor
	catalog *store.FileStore
	db      *store.PGStore // optional; nil when no DSN is configured
	logger  *slog.Logger
}

func New(proc Processor, catalog *store.FileStore, db *store.PGStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{proc: proc, catalog: catalog, db: db, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.home)
	router.POST("/scan", s.scanCard)
	router.GET("/contacts", s.listContacts)
	return router
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// scanCard accepts one multipart file, runs it through the recognition
// pipeline, and renders either the result view or an error view. Transport
// failures surface with their status and body; malformed model output is not
// an error and renders as a warning on the result view.
func (s *Server) scanCard(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Файл не передан")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Не удалось прочитать файл")
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("web.upload_close_error", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		s.renderError(c, http.StatusBadRequest, "Загруженный файл пуст")
		return
	}
	if !constants.IsAllowedExt(filepath.Ext(fileHeader.Filename)) {
		s.renderError(c, http.StatusBadRequest, "Неподдерживаемый тип файла")
		return
	}

	s.logger.Info("web.scan.start", "filename", fileHeader.Filename, "bytes", len(data))

	res, err := s.proc.ProcessBytes(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		s.logger.Error("web.scan.failed", "filename", fileHeader.Filename, "error", err)
		s.renderError(c, http.StatusBadGateway, "Ошибка распознавания: "+err.Error())
		return
	}

	savedID, saveError := s.maybePersist(c, res)

	c.HTML(http.StatusOK, "result.html", gin.H{
		"RawText":   res.RawText,
		"Accepted":  res.Outcome.Accepted,
		"Record":    res.Outcome.Record,
		"Reason":    res.Outcome.Reason,
		"Warning":   res.Outcome.Warning,
		"SavedID":   savedID,
		"SaveError": saveError,
	})
}

// maybePersist saves an accepted record when the form asked for it. Rejected
// outcomes are never persisted. A storage failure comes back as a message for
// the result page; the recognition result itself is still shown.
func (s *Server) maybePersist(c *gin.Context, res scan.Result) (id, errMsg string) {
	if !res.Outcome.Accepted {
		return "", ""
	}
	contact := res.Outcome.Record.Contact()

	var gw store.Gateway
	switch c.PostForm("save") {
	case "file":
		gw = s.catalog
	case "db":
		if s.db == nil {
			s.logger.Warn("web.save.db_not_configured")
			return "", "Сохранение в базу данных не настроено"
		}
		gw = s.db
	default:
		return "", ""
	}

	id, err := gw.Save(c.Request.Context(), contact)
	if err != nil {
		s.logger.Error("web.save.failed", "error", err)
		return "", "Не удалось сохранить запись: " + err.Error()
	}
	return id, ""
}

// listContacts serves the persisted records as JSON: database rows when a
// database is configured, catalog entries otherwise.
func (s *Server) listContacts(c *gin.Context) {
	if s.db != nil {
		contacts, err := s.db.List(c.Request.Context())
		if err != nil {
			s.logger.Error("web.contacts.list_failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "не удалось получить список контактов"})
			return
		}
		c.IndentedJSON(http.StatusOK, contacts)
		return
	}
	entries, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.logger.Error("web.contacts.list_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "не удалось получить список контактов"})
		return
	}
	c.IndentedJSON(http.StatusOK, entries)
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"Error": message})
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"mediadesk/internal/api"
	"mediadesk/internal/deps"
	"mediadesk/internal/services"
)

const errorKindKey = "mediadesk.error_kind"

func (s *Server) handleHealth(c *gin.Context) {
	roots := s.box.Roots()
	if roots == nil {
		roots = []string{}
	}
	c.JSON(http.StatusOK, api.HealthResponse{
		OK:    true,
		Roots: roots,
		Tools: deps.CheckBinaries(deps.MediaRequirements(s.cfg)),
	})
}

func (s *Server) handleBrowse(c *gin.Context) {
	dir, err := s.box.Resolve(c.Query("path"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	entries, err := s.lister.List(dir)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.BrowseResponse{Path: dir, Entries: api.FromEntries(entries)})
}

func (s *Server) handleProbe(c *gin.Context) {
	raw := c.Query("path")
	if strings.TrimSpace(raw) == "" {
		s.writeError(c, services.Wrap(services.ErrInvalidInput, "server", "probe", "path is required", nil))
		return
	}
	path, err := s.box.Resolve(raw)
	if err != nil {
		s.writeError(c, err)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		s.writeError(c, services.Wrap(services.ErrIO, "server", "probe", "", err))
		return
	}
	if info.IsDir() {
		s.writeError(c, services.Wrap(services.ErrInvalidInput, "server", "probe", fmt.Sprintf("%s is a directory", path), nil))
		return
	}
	c.JSON(http.StatusOK, api.ProbeResponse{
		Path:     path,
		Size:     info.Size(),
		Modified: api.FormatTime(info.ModTime()),
		Meta:     s.prober.Probe(s.toolContext(c, "probe"), path),
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	var req api.ExtractRequest
	if !s.bind(c, &req) {
		return
	}
	result, err := s.ops.ExtractSubtitles(s.toolContext(c, "extract_subs"), req.ToExtract())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ExtractResponse{OK: true, Output: result.Output, Stream: result.Stream})
}

func (s *Server) handleBurn(c *gin.Context) {
	var req api.BurnRequest
	if !s.bind(c, &req) {
		return
	}
	result, err := s.ops.BurnSubtitles(s.toolContext(c, "burn_subs"), req.ToBurn())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromRunResult(result))
}

func (s *Server) handleHEVC(c *gin.Context) {
	var req api.HEVCRequest
	if !s.bind(c, &req) {
		return
	}
	result, err := s.ops.TranscodeHEVC(s.toolContext(c, "transcode_hevc"), req.ToHEVC())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromRunResult(result))
}

func (s *Server) handleMP4(c *gin.Context) {
	var req api.MP4Request
	if !s.bind(c, &req) {
		return
	}
	result, err := s.ops.TranscodeMP4(s.toolContext(c, "transcode_mp4"), req.ToMP4())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromRunResult(result))
}

func (s *Server) handleFileOp(c *gin.Context) {
	var req api.FileOpRequest
	if !s.bind(c, &req) {
		return
	}
	result, err := s.files.Apply(req.ToOperation())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromFileOpResult(result))
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req api.TranslateRequest
	if !s.bind(c, &req) {
		return
	}
	resp, err := api.StubTranslate(s.box, s.cfg.Translate.BatchSize, req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Not found"})
}

func (s *Server) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.writeError(c, services.Wrap(services.ErrInvalidInput, "server", "decode", "malformed JSON body", err))
		return false
	}
	return true
}

// toolContext detaches subprocess lifetime from the client connection while
// keeping request-scoped values for logging.
func (s *Server) toolContext(c *gin.Context, operation string) context.Context {
	ctx := context.WithoutCancel(c.Request.Context())
	return services.WithOperation(ctx, operation)
}

func (s *Server) writeError(c *gin.Context, err error) {
	kind := services.Kind(err)
	c.Set(errorKindKey, kind)
	c.JSON(services.HTTPStatus(err), api.ErrorResponse{Error: err.Error(), Kind: kind})
}

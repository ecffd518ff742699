package routes

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/controllers"
	"zeus/zeus/middlewares"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/storage"
	apitypes "zeus/zeus/utils/types"

	"github.com/go-chi/chi/v5"
)

const multipartOverhead = 1 << 20

var (
	errFileMissing  = errors.New("File missing")
	errFileTooLarge = errors.New("File too large")
)

type APIControllers struct {
	Upload   *controllers.UploadController
	Proxy    *controllers.ProxyController
	Analysis *controllers.AnalysisController
	Image    *controllers.ImageController
}

func APIRoutes(ctrls APIControllers, ratePerMinute int) chi.Router {
	r := chi.NewRouter()

	r.Get("/analysis/modes", handleJSON(func(r *http.Request) (any, int, error) {
		return ctrls.Analysis.Modes(), http.StatusOK, nil
	}))

	// GET /api/analyses : most recent stored analyses
	r.Get("/analyses", handleJSON(func(r *http.Request) (any, int, error) {
		recs, err := ctrls.Analysis.Recent(r.Context())
		if err != nil {
			return nil, statusFor(err), err
		}
		return recs, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RateLimit(ratePerMinute))

		// POST /api/upload : multipart "file"
		gr.Post("/upload", handleJSON(func(r *http.Request) (any, int, error) {
			name, ctype, data, err := readUpload(r)
			if err != nil {
				return nil, uploadStatus(err), err
			}
			resp, err := ctrls.Upload.Upload(r.Context(), name, ctype, data)
			if err != nil {
				if errors.Is(err, storage.ErrFileTooLarge) {
					return nil, http.StatusRequestEntityTooLarge, errFileTooLarge
				}
				return nil, statusFor(err), err
			}
			return resp, http.StatusOK, nil
		}))

		// POST /api/vlm : pass-through to the chat-completion endpoint
		gr.Post("/vlm", func(w http.ResponseWriter, r *http.Request) {
			var req llm.ProxyRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, apitypes.ErrorResponse{Error: err.Error()})
				return
			}
			up, err := ctrls.Proxy.Forward(r.Context(), req)
			if err != nil {
				writeJSON(w, statusFor(err), apitypes.ErrorResponse{Error: err.Error()})
				return
			}
			ct := up.ContentType
			if ct == "" {
				ct = "application/json"
			}
			w.Header().Set("Content-Type", ct)
			w.WriteHeader(up.Status)
			w.Write(up.Body)
		})

		gr.Post("/translate", handleJSON(func(r *http.Request) (any, int, error) {
			var req apitypes.TranslateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			resp, err := ctrls.Proxy.Translate(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return resp, http.StatusOK, nil
		}))

		gr.Post("/analyze", handleJSON(func(r *http.Request) (any, int, error) {
			req, err := readAnalyzeRequest(r)
			if err != nil {
				return nil, uploadStatus(err), err
			}
			res, err := ctrls.Analysis.Analyze(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return res, http.StatusOK, nil
		}))

		gr.Post("/generate-image", handleJSON(func(r *http.Request) (any, int, error) {
			var req analysis.ImageRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			res, err := ctrls.Image.Generate(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return res, http.StatusOK, nil
		}))
	})

	return r
}

func uploadStatus(err error) int {
	if errors.Is(err, errFileTooLarge) || errors.Is(err, storage.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// readUpload pulls the "file" part out of a multipart request.
func readUpload(r *http.Request) (string, string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, storage.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes + multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", "", nil, errFileTooLarge
		}
		return "", "", nil, errFileMissing
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, errFileMissing
	}
	defer file.Close()
	if header.Size > storage.MaxUploadBytes {
		return "", "", nil, errFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadBytes+1))
	if err != nil {
		return "", "", nil, err
	}
	if len(data) > storage.MaxUploadBytes {
		return "", "", nil, errFileTooLarge
	}
	return header.Filename, header.Header.Get("Content-Type"), data, nil
}

// readAnalyzeRequest accepts either JSON or a multipart form with an
// optional "file" part.
func readAnalyzeRequest(r *http.Request) (analysis.Request, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		var body apitypes.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return analysis.Request{}, err
		}
		return analysis.Request{Mode: body.Mode, Text: body.Text, ImageURL: body.ImageURL, Temperature: body.Temperature}, nil
	}

	req := analysis.Request{}
	_, _, data, err := readUpload(r)
	switch {
	case err == nil:
		jpg, cerr := storage.CompressImage(data)
		if cerr != nil {
			return analysis.Request{}, cerr
		}
		req.Image = &llm.InlineImage{Data: jpg, MIMEType: "image/jpeg"}
	case errors.Is(err, errFileMissing):
		// text-only analysis
	default:
		return analysis.Request{}, err
	}
	req.Mode = r.FormValue("mode")
	req.Text = r.FormValue("text")
	req.ImageURL = r.FormValue("image_url")
	if t := strings.TrimSpace(r.FormValue("temperature")); t != "" {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return analysis.Request{}, analysis.ErrInvalidTemperature
		}
		req.Temperature = &v
	}
	return req, nil
}

package controllers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plumecms/plume/utils"
)

// invalidNameRe rejects path traversal and any character outside the
// filename allow-list.
var invalidNameRe = regexp.MustCompile(`([^\w\s\d\-_~,;:\[\]().])|(\.{2,})`)

var allowedExtensions = map[string]bool{
	"gif": true,
	"jpg": true,
	"png": true,
}

// UploadController stores editor images into the public upload folder.
type UploadController struct {
	dir            string
	allowedOrigins []string
}

// NewUploadController creates an UploadController writing into dir.
func NewUploadController(dir string, allowedOrigins []string) *UploadController {
	return &UploadController{dir: dir, allowedOrigins: allowedOrigins}
}

// UploadImage accepts the editor's multipart upload and answers with the
// stored file's public location as JSON. Same-origin requests carry no
// Origin header; when one is present it must be allow-listed.
func (u *UploadController) UploadImage(ctx *gin.Context) {
	header := firstUploadedFile(ctx.Request)
	if header == nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	if origin := ctx.GetHeader("Origin"); origin != "" {
		if !u.originAllowed(origin) {
			ctx.String(http.StatusForbidden, "Origin Denied")
			return
		}
		ctx.Header("Access-Control-Allow-Origin", origin)
	}

	name := filepath.Base(header.Filename)
	if invalidNameRe.MatchString(name) {
		ctx.String(http.StatusInternalServerError, "Invalid file name.")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !allowedExtensions[ext] {
		ctx.String(http.StatusInternalServerError, "Invalid extension.")
		return
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		utils.Sugar.Errorf("create upload dir: %v", err)
		ctx.String(http.StatusInternalServerError, "Server Error")
		return
	}
	if err := ctx.SaveUploadedFile(header, filepath.Join(u.dir, name)); err != nil {
		utils.Sugar.Errorf("save upload: %v", err)
		ctx.String(http.StatusInternalServerError, "Server Error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"location": path.Join(filepath.ToSlash(u.dir), name)})
}

func (u *UploadController) originAllowed(origin string) bool {
	for _, allowed := range u.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// firstUploadedFile returns the first file of the multipart form, whatever
// its field name, or nil when the request carries none.
func firstUploadedFile(r *http.Request) *multipart.FileHeader {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil
	}
	if r.MultipartForm == nil {
		return nil
	}
	for _, headers := range r.MultipartForm.File {
		if len(headers) > 0 {
			return headers[0]
		}
	}
	return nil
}

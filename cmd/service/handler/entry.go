package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoirlab/memoir-api/internal/core"
	v1 "github.com/memoirlab/memoir-api/internal/logic/v1"
	"github.com/memoirlab/memoir-api/internal/response"
	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/types"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}

// maxUploadBytes caps one multipart request, not one file.
const maxUploadBytes = 32 << 20

type CreateEntryRequest struct {
	Type       types.EntryType `json:"type" binding:"required"`
	Text       string          `json:"text"`
	HappenedOn string          `json:"happened_on" binding:"required"`
	ImagePaths []string        `json:"image_paths"`
}

// CreateEntry creates an entry from already uploaded objects, the client
// obtained the paths through GenUploadKey beforehand.
func (s *HttpSrv) CreateEntry(c *gin.Context) {
	var (
		err error
		req CreateEntryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewEntryLogic(c, s.Core)
	result, err := logic.CreateEntry(v1.CreateEntryArgs{
		Type:       req.Type,
		Text:       req.Text,
		HappenedOn: req.HappenedOn,
	}, v1.NewClientMediatedUpload(s.Core, req.ImagePaths))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

// CreateEntryWithUpload creates an entry from a multipart form, the server
// stores the files itself.
func (s *HttpSrv) CreateEntryWithUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		response.APIError(c, errors.New("HttpSrv.CreateEntryWithUpload.MultipartForm", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}

	formValue := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var files []v1.UploadFile
	for _, fh := range form.File["images"] {
		if !v1.IsSupportedImage(fh.Filename) {
			response.APIError(c, errors.New("HttpSrv.CreateEntryWithUpload.FileType", i18n.ERROR_UNSUPPORTED_FILE_TYPE, nil).Code(http.StatusBadRequest))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.APIError(c, errors.New("HttpSrv.CreateEntryWithUpload.Open", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.APIError(c, errors.New("HttpSrv.CreateEntryWithUpload.ReadAll", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
			return
		}
		files = append(files, v1.UploadFile{
			FileName: fh.Filename,
			Content:  content,
		})
	}

	logic := v1.NewEntryLogic(c, s.Core)
	result, err := logic.CreateEntry(v1.CreateEntryArgs{
		Type:       types.EntryType(formValue("type")),
		Text:       formValue("text"),
		HappenedOn: formValue("happened_on"),
	}, v1.NewServerMediatedUpload(s.Core, files))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

type ListEntriesRequest struct {
	Date string `json:"date" form:"date" binding:"required"`
}

func (s *HttpSrv) ListEntries(c *gin.Context) {
	var (
		err error
		req ListEntriesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, err := v1.NewEntryLogic(c, s.Core).ListEntriesForDate(req.Date)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, gin.H{
		"list": list,
	})
}

func (s *HttpSrv) EntryCalendar(c *gin.Context) {
	dates, err := v1.NewEntryLogic(c, s.Core).CalendarMarks()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, gin.H{
		"dates": dates,
	})
}

type UpdateEntryTextRequest struct {
	ID   string `json:"id" binding:"required"`
	Text string `json:"text"`
}

func (s *HttpSrv) UpdateEntryText(c *gin.Context) {
	var (
		err error
		req UpdateEntryTextRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).UpdateEntryText(req.ID, req.Text)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, entry)
}

type DeleteEntryRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

func (s *HttpSrv) DeleteEntry(c *gin.Context) {
	var (
		err error
		req DeleteEntryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewEntryLogic(c, s.Core).DeleteEntry(req.ID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

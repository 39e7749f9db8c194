package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/cache"
	"curlysbooks/src/pkg/config"
	echomw "curlysbooks/src/pkg/echo-middleware"
	"curlysbooks/src/pkg/ocr"
	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/pipeline"
	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/recognizer"
	"curlysbooks/src/pkg/repository"
	"curlysbooks/src/pkg/vendor"
)

/*
main is a minimal sketch of the upload endpoint spec.md marks as
out-of-scope: one bearer-token-guarded, rate-limited multipart POST
that saves the uploaded file under config.Cfg.ObjectsRoot and hands it
to pipeline.ProcessReceipt. It exists to give echomw's three
middlewares (auth, rate limit, route logging) a concrete caller in
this module — the upload endpoint's own contract (virus scanning,
resumable uploads, client retries) is explicitly out of scope.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	flag.Parse()
	config.InitializeConfig(*configPath)
	echomw.InitializeConfig(nil)
	echomw.UptdateRateLimits(echomw.Cfg.MiddlewareRateLimit, echomw.Cfg.MiddlewareBurst)

	db, e := config.OpenDatabase()
	e.QuitIf("error")

	c := cache.New(db)
	repo := repository.New(db, c)
	rec := recognizer.New(c, config.Cfg.LLMPricePerInputToken, config.Cfg.LLMPricePerOutputToken)
	pipe := pipeline.New(ocr.NewFactory(), vendor.DefaultRegistry(), parser.NewRegistry(), rec, repo)

	e2 := echo.New()
	e2.Use(echomw.RouteAccessLoggerMiddleware)
	e2.Use(echomw.RateLimiterMiddleware)

	e2.POST("/receipts", handleUpload(pipe), echomw.RequireBearerToken)

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "Intake listening on '%s'", address)
	if err := e2.Start(address); err != nil {
		tl.Log(tl.Error, palette.RedBold, "intake server stopped: %v", err)
	}
}

func handleUpload(pipe *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		entity := receipt.Entity(strings.ToLower(strings.TrimSpace(c.FormValue("entity"))))
		if !entity.Valid() {
			return c.String(http.StatusBadRequest, "entity must be 'corp' or 'soleprop'")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.String(http.StatusBadRequest, "missing multipart field 'file'")
		}

		savedPath, e := saveUploadedFile(fileHeader)
		if e != nil {
			tl.Log(tl.Error, palette.RedBold, "save uploaded file: %v", e)
			return c.String(http.StatusInternalServerError, "could not save upload")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
		defer cancel()

		result, e := pipe.ProcessReceipt(ctx, savedPath, entity, "", receipt.SourcePWA)
		if e != nil {
			tl.Log(tl.Error, palette.RedBold, "process receipt: %v", e)
			return c.String(http.StatusUnprocessableEntity, "receipt could not be processed")
		}

		return c.JSON(http.StatusAccepted, result)
	}
}

func saveUploadedFile(fileHeader *multipart.FileHeader) (string, *xerr.Error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", xerr.NewError(err, "open uploaded file", fileHeader.Filename)
	}
	defer src.Close()

	if mkErr := os.MkdirAll(config.Cfg.ObjectsRoot, 0o755); mkErr != nil {
		return "", xerr.NewError(mkErr, "create objects root", config.Cfg.ObjectsRoot)
	}

	destPath := filepath.Join(config.Cfg.ObjectsRoot, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename)))
	dest, err := os.Create(destPath)
	if err != nil {
		return "", xerr.NewError(err, "create destination file", destPath)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", xerr.NewError(err, "copy uploaded file", destPath)
	}
	return destPath, nil
}

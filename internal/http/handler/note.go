package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusnotes/internal/http/middleware"
	"campusnotes/internal/service"
)

// Dashboard lists the current user's notes, newest first.
func Dashboard(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := noteSvc.Dashboard(c.UserContext(), middleware.CurrentUserID(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": notes})
	}
}

// Browse returns notes matching ?search= (case-insensitive title substring)
// and ?subject= (exact), plus the distinct subject list for filter options.
func Browse(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := noteSvc.Browse(c.UserContext(), c.Query("search"), c.Query("subject"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadPage exists so GET /upload responds like the other form pages.
func UploadPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Upload creates a note from a multipart form (fields: title, description,
// subject; file field name: file).
func Upload(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		in := service.UploadInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Subject:     c.FormValue("subject"),
			FileName:    fh.Filename,
			File:        f,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}

		note, err := noteSvc.Upload(c.UserContext(), middleware.CurrentUserID(c), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotVerified):
				return writeError(c, fiber.StatusForbidden, "NOT_VERIFIED", "only verified users can upload notes")
			case errors.Is(err, service.ErrNoFile):
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			case errors.Is(err, service.ErrMissingFields):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "title and subject are required")
			case errors.Is(err, service.ErrFileType):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "only PDF, DOC, DOCX, PPT, PPTX files are allowed")
			case errors.Is(err, service.ErrStorageUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "error uploading file, please try again")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// Download redirects to a time-limited signed URL for the note's file. Any
// authenticated user may download any note. The counter increments only when
// signing succeeded; a signing failure sends the client back to browse.
func Download(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := noteSvc.Download(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "note not found")
			case errors.Is(err, service.ErrStorageUnavailable):
				return c.Redirect("/browse?error=download_unavailable", fiber.StatusFound)
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}

// Delete removes a note owned by the current user, then redirects to the
// dashboard.
func Delete(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := noteSvc.Delete(c.UserContext(), id, middleware.CurrentUserID(c)); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "note not found")
			case errors.Is(err, service.ErrForbidden):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "you can only delete your own notes")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
}

// Profile returns the current user's aggregate upload stats.
func Profile(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := noteSvc.Profile(c.UserContext(), middleware.CurrentUserID(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(st)
	}
}

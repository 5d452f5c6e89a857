package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
)

// FileHandler sube imágenes de repuestos.
type FileHandler struct {
	uc *usecase.FileUseCase
}

// NewFileHandler construye el handler.
func NewFileHandler(uc *usecase.FileUseCase) *FileHandler {
	return &FileHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen
// @Description  Solo image/*, máximo 5 MiB. Devuelve la URL pública.
// @Tags         file
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Imagen"
// @Success      200    {object}  dto.Envelope{data=dto.FileUploadResponse}
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/file/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "image es requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.UploadImage(c.Context(), fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Imagen subida", out))
}

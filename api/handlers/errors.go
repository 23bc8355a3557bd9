package handlers

import "github.com/gofiber/fiber/v3"

// ErrUnknownCategory is returned when a glossary category does not exist
var ErrUnknownCategory = fiber.NewError(fiber.StatusNotFound, "unknown glossary category")

// ErrUnknownChartKind is returned when a chart kind is not one of the dashboard charts
var ErrUnknownChartKind = fiber.NewError(fiber.StatusNotFound, "unknown chart kind")

// ErrInvalidDate is returned when start or end is not YYYY-MM-DD
var ErrInvalidDate = fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")

// ErrInvalidAllStates is returned when all_states is neither yes nor no
var ErrInvalidAllStates = fiber.NewError(fiber.StatusBadRequest, "invalid all_states value, expected yes or no")

// ErrUnknownFormat is returned for image formats other than png and svg
var ErrUnknownFormat = fiber.NewError(fiber.StatusBadRequest, "unknown image format, expected png or svg")

// ErrImageTooLarge is returned when width or height exceeds the render limits
var ErrImageTooLarge = fiber.NewError(fiber.StatusBadRequest, "image too large, width and height must not exceed 4096")

// ErrEmptyChart is returned when the requested chart has nothing to draw
var ErrEmptyChart = fiber.NewError(fiber.StatusUnprocessableEntity, "chart has no data points for this selection")

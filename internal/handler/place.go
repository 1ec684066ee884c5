package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // SQL sentinel errors like sql.ErrNoRows
    "errors"       // errors.Is / errors.As for sentinel and typed errors
    "net/http"     // HTTP status codes and primitives
    "strings"      // string trimming utilities
    "time"         // timeouts for DB calls and event timestamps

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/places-api/internal/geocode"    // geocoder adapter error type
    "github.com/iliyamo/places-api/internal/model"      // domain structs
    "github.com/iliyamo/places-api/internal/queue"      // lifecycle event payloads
    "github.com/iliyamo/places-api/internal/repository" // DB repositories
    "github.com/iliyamo/places-api/internal/storage"    // uploaded image store
    queue_publisher "github.com/iliyamo/places-api/internal/service"
)

// AddressResolver is the contract the place handlers expect from the
// geocoder adapter: one call, coordinates or a typed failure.
type AddressResolver interface {
    Resolve(ctx context.Context, address string) (model.Location, error)
}

// PlaceHandler bundles the dependencies of the five place endpoints.
// Each handler follows the same control pattern: validate inputs,
// fetch required entities, enforce authorization, persist, respond.
type PlaceHandler struct {
    Places *repository.PlaceRepo
    Users  *repository.UserRepo
    Geo    AddressResolver
    Images *storage.ImageStore
}

// NewPlaceHandler constructs a PlaceHandler and panics if a dependency is nil.
func NewPlaceHandler(places *repository.PlaceRepo, users *repository.UserRepo, geo AddressResolver, images *storage.ImageStore) *PlaceHandler {
    if places == nil || users == nil || geo == nil || images == nil {
        panic("nil dependency passed to NewPlaceHandler")
    }
    return &PlaceHandler{Places: places, Users: users, Geo: geo, Images: images}
}

// GetPlaceByID handles GET /api/places/:pid.
func (h *PlaceHandler) GetPlaceByID(c echo.Context) error {
    pid, err := parseID(c, "pid")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
    }
    p, err := h.Places.GetByID(c.Request().Context(), pid)
    if err != nil {
        if errors.Is(err, repository.ErrPlaceNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find a place for the provided id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetching place failed, please try again later"})
    }
    return c.JSON(http.StatusOK, echo.Map{"place": p})
}

// GetPlacesByUserID handles GET /api/places/user/:uid. An unknown user
// and a user who owns zero places both yield 404; the conflation is
// kept on purpose because existing clients key off it.
func (h *PlaceHandler) GetPlacesByUserID(c echo.Context) error {
    uid, err := parseID(c, "uid")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    ctx := c.Request().Context()
    if _, err := h.Users.GetByID(ctx, uid); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find places for the provided user id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetching places failed, please try again later"})
    }
    places, err := h.Places.ListByCreator(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetching places failed, please try again later"})
    }
    if len(places) == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find places for the provided user id"})
    }
    return c.JSON(http.StatusOK, echo.Map{"places": places})
}

// CreatePlace handles POST /api/places. The request is multipart: the
// title, description and address fields plus an image file. The place
// row and the creator's owned-set entry are written in one transaction
// by the repository; on any failure before the commit the stored image
// is removed again so no orphan files accumulate.
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    title := strings.TrimSpace(c.FormValue("title"))
    description := strings.TrimSpace(c.FormValue("description"))
    address := strings.TrimSpace(c.FormValue("address"))
    if title == "" || description == "" || address == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid inputs passed, please check your data"})
    }
    fh, err := c.FormFile("image")
    if err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid inputs passed, please check your data"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
    defer cancel()

    // Resolve the address first; a resolution failure propagates to the
    // client exactly as the adapter produced it.
    loc, err := h.Geo.Resolve(ctx, address)
    if err != nil {
        var ge *geocode.Error
        if errors.As(err, &ge) {
            return c.JSON(ge.Status, echo.Map{"error": ge.Message})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolving address failed"})
    }

    if _, err := h.Users.GetByID(ctx, uid); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find user for provided id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "creating place failed, please try again"})
    }

    imagePath, err := h.Images.Save(fh)
    if err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "could not store the uploaded image"})
    }

    p := &model.Place{
        Title:       title,
        Description: description,
        Address:     address,
        Location:    loc,
        Image:       imagePath,
        CreatorID:   uid,
    }
    if err := h.Places.CreateForUser(ctx, p); err != nil {
        h.Images.Remove(imagePath)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "creating place failed, please try again"})
    }

    // Lifecycle event is fire and forget; the response never waits on it.
    go func(ev queue.PlaceCreatedEvent) {
        _ = queue_publisher.PublishPlaceCreated(context.Background(), ev)
    }(queue.PlaceCreatedEvent{
        PlaceID:   p.ID,
        CreatorID: p.CreatorID,
        Title:     p.Title,
        Address:   p.Address,
        Lat:       p.Location.Lat,
        Lng:       p.Location.Lng,
        CreatedAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{"place": p})
}

// UpdatePlace handles PATCH /api/places/:pid. Only the title and
// description are mutable; only the creator may change them.
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    pid, err := parseID(c, "pid")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
    }
    var body struct {
        Title       string `json:"title"`
        Description string `json:"description"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    title := strings.TrimSpace(body.Title)
    description := strings.TrimSpace(body.Description)
    if title == "" || description == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid inputs passed, please check your data"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Places.GetByID(ctx, pid)
    if err != nil {
        if errors.Is(err, repository.ErrPlaceNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find a place for the provided id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetching place failed, please try again later"})
    }
    if p.CreatorID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to edit this place"})
    }

    if err := h.Places.UpdateContent(ctx, pid, title, description); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save your updated place, please try again later"})
    }
    p.Title = title
    p.Description = description
    return c.JSON(http.StatusOK, echo.Map{"place": p})
}

// DeletePlace handles DELETE /api/places/:pid. The place row and the
// creator's owned-set entry are removed in one transaction; the stored
// image is deleted afterwards as a best-effort side effect whose
// failure never reaches the client.
func (h *PlaceHandler) DeletePlace(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    pid, err := parseID(c, "pid")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, creator, err := h.Places.GetByIDWithCreator(ctx, pid)
    if err != nil {
        if errors.Is(err, repository.ErrPlaceNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find place for this id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete place"})
    }
    if creator.ID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to delete this place"})
    }

    if err := h.Places.DeleteForUser(ctx, pid, creator.ID); err != nil {
        if errors.Is(err, repository.ErrPlaceNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find place for this id"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete place"})
    }

    // Cleanup after the commit: remove the image file and announce the
    // deletion. Neither may block or fail the response.
    imagePath := p.Image
    go func(ev queue.PlaceDeletedEvent) {
        h.Images.Remove(imagePath)
        _ = queue_publisher.PublishPlaceDeleted(context.Background(), ev)
    }(queue.PlaceDeletedEvent{
        PlaceID:   p.ID,
        CreatorID: creator.ID,
        Title:     p.Title,
        DeletedAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{"message": "Deleted place."})
}

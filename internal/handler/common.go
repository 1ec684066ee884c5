package handler // handler defines http handlers

import (
    "errors"  // errors provides the sentinel value used in getUserID
    "strconv" // strconv converts string identifiers to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/places-api/internal/middleware" // middleware defines the context key for the caller identity
)

// getUserID extracts the authenticated user's ID from echo.Context.
// The JWT middleware stores the value as uint64, but older tokens and
// tests may leave other numeric types behind, so the helper normalizes
// whatever it finds.
func getUserID(c echo.Context) (uint64, error) { // begin getUserID helper
    v := c.Get(middleware.UserIDKey) // fetch user_id from context
    switch t := v.(type) {           // perform type switch on the value
    case uint64: // when already uint64
        return t, nil // return directly
    case int: // when stored as int
        return uint64(t), nil // convert to uint64
    case int64: // when stored as int64
        return uint64(t), nil // convert to uint64
    case float64: // when stored as float64
        return uint64(t), nil // convert to uint64
    case string: // when stored as string
        if n, err := strconv.ParseUint(t, 10, 64); err == nil { // parse string to uint64
            return n, nil // return parsed number
        }
    } // end type switch
    return 0, errors.New("invalid user_id in context") // return error if value is missing or invalid
}

// parseID parses a numeric path parameter such as :pid or :uid.
func parseID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

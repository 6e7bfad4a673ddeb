package utils

type contextKey string

// ContextKeyAdminEmail carries the authenticated administrator's email
// through the request context once the route guard has verified the
// session.
const ContextKeyAdminEmail contextKey = "adminEmail"

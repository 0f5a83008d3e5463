package shared

import (
	"fmt"
	"strings"
)

var messages = map[string]string{
	"error.bad_request":              "invalid request parameters",
	"error.id_invalid":               "invalid id",
	"error.unauthorized":             "unauthorized",
	"error.forbidden":                "permission denied",
	"error.internal":                 "internal server error",
	"error.jwt_secret_missing":       "authentication is not configured",
	"error.auth_header_missing":      "missing authorization header",
	"error.auth_header_invalid":      "authorization header must be a bearer token",
	"error.token_invalid":            "token invalid or expired",
	"error.user_id_invalid":          "invalid user id",
	"error.user_id_type_invalid":     "user id has an unexpected type",
	"error.admin_id_invalid":         "invalid admin id",
	"error.admin_id_type_invalid":    "admin id has an unexpected type",
	"error.invalid_credentials":      "invalid credentials",
	"error.user_disabled":            "account disabled",
	"error.login_failed":             "login failed",
	"error.login_too_many":           "too many login attempts, retry in %d seconds",
	"error.rate_limited":             "too many requests, retry in %d seconds",
	"error.rate_limit_unavailable":   "rate limiter unavailable",
	"error.captcha_required":         "captcha required",
	"error.captcha_invalid":          "captcha invalid",
	"error.captcha_disabled":         "captcha is not enabled",
	"error.captcha_generate_failed":  "captcha generation failed",
	"error.register_failed":          "registration failed",
	"error.email_exists":             "email already registered",
	"error.username_exists":          "username already exists",
	"error.user_not_found":           "user not found",
	"error.profile_fetch_failed":     "failed to load profile",
	"error.profile_update_failed":    "failed to update profile",
	"error.zone_not_found":           "delivery zone not found",
	"error.zone_fetch_failed":        "failed to load delivery zones",
	"error.zone_save_failed":         "failed to save delivery zone",
	"error.zone_check_failed":        "failed to check delivery eligibility",
	"error.menu_fetch_failed":        "failed to load menu",
	"error.menu_item_not_found":      "menu item not found",
	"error.menu_update_failed":       "failed to update menu item",
	"error.order_not_found":          "order not found",
	"error.order_fetch_failed":       "failed to load orders",
	"error.order_create_failed":      "failed to create order",
	"error.order_update_failed":      "failed to update order",
	"error.settings_fetch_failed":    "failed to load settings",
	"error.settings_save_failed":     "failed to save settings",
	"error.admin_fetch_failed":       "failed to load admins",
	"error.admin_create_failed":      "failed to create admin",
	"error.admin_role_assign_failed": "failed to assign admin role",
	"error.geocoder_unavailable":     "geocoding service unavailable",
	"error.geocoder_busy":            "geocoding service busy, retry later",
	"error.geocode_failed":           "geocoding failed",
	"error.place_not_found":          "no address found for location",
}

// Message 按 key 获取提示文案，未登记的 key 原样返回
func Message(key string, args ...interface{}) string {
	msg, ok := messages[strings.TrimSpace(key)]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

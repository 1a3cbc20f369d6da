// Package common contains shared constants, sentinel errors and small
// helpers used across inodesk components.
package common

// SessionMirrorKey is the durable-storage key holding the serialized
// account of the active session. The key is absent while logged out.
const SessionMirrorKey = "ino-user"

// DefaultPhoneRegion is the region used to interpret local phone numbers
// such as 0912345678.
const DefaultPhoneRegion = "ET"

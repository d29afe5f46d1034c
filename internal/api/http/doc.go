// Package http contains the gin handlers for the desktop API.
//
// Every response carries the success envelope: {"success": true,
// "data": {...}} or {"success": false, "error": "..."}. Domain error
// codes map onto HTTP statuses (not found 404, collision 409, invalid
// input 400, storage fault 500).
package http

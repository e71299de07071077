package constants

import "time"

// attendly response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog box. 0 means it does not require. 1 means it requires.

var FACE_NOT_ENROLLED uint = 4311        // take the user to the face enrollment page
var FACE_VERIFICATION_FAILED uint = 4320 // prompt the user to retake the photo
var ATTENDANCE_ALREADY_MARKED uint = 4330
var ACCOUNT_LOCKED_OUT uint = 4341 // show the lockout dialog with the remaining duration
var ACCOUNT_CREATED uint = 9110    // take the user to the face enrollment page

// Face matching policy. Confidence is 1 - min euclidean distance over the
// enrolled set, clamped at 0. Equality at the threshold counts as a match.
var FACE_MATCH_THRESHOLD float64 = 0.6
var LIVENESS_SCORE_THRESHOLD float64 = 0.3

// Enrollment sample quality gates.
var MIN_ENROLLMENT_SAMPLES int = 3
var MIN_FACE_BOX_AREA float64 = 10_000
var MIN_EYE_DISTANCE float64 = 50

// Work day policy, local time.
var WORK_START_HOUR int = 9
var WORK_END_HOUR int = 17

// Login lockout policy.
var MAX_LOGIN_FAILURES int64 = 5
var ACCOUNT_LOCK_DURATION = 2 * time.Hour
var LOGIN_IP_WINDOW = 15 * time.Minute
var LOGIN_IP_MAX_ATTEMPTS int64 = 5

var ATTENDANCE_HISTORY_LIMIT int64 = 100
var MAX_NOTE_LENGTH int = 500

var SUPPORT_EMAIL = "help@attendly.io"

package jwt

import "time"

// Clock returns the current time. Tests may override it to make
// time-dependent behavior deterministic. Nothing in this package's
// signing or verification path reads it today; claim-timing validation
// (exp/nbf) is out of scope, but the hook is kept as the one piece of
// injectable ambient state this package exposes, matching the
// equivalent var in kataras-jwt.
var Clock = time.Now

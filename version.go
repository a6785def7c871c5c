package sonic

// Version identifies this release of the library. It is informational only.
const Version = "0.1.2"

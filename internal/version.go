package internal

// Version is the current lingopal release version
const Version = "0.2.1"

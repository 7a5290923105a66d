package lox

// Version of the interpreter, reported by the driver.
const Version = "0.3.0"

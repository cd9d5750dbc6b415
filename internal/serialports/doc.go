// Package serialports discovers serial ports on the host OS.
//
// It wraps go.bug.st/serial's enumerator so the rest of the code deals
// with plain port names. The daemon logs the discovered ports at startup
// and publishes them in the settings table as the domain of the com_port
// setting; discovery itself is entirely the OS's business.
package serialports

// Package motion holds the frame-driven animation math used by the video
// compositions: piecewise linear interpolation with configurable
// extrapolation, an analytic damped spring, hex color blending and the
// effect formulas (typewriter, counter, flash, shake, overlays, health
// bars and spring entrances).
//
// Everything here is a pure function of the frame number. Malformed
// literal ranges are programming errors and panic; ValidateRanges lets
// callers check ranges built at run time.
package motion

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface paints dabs onto a raster and records each painting
// session as one undo step.
//
// # Sessions
//
// Drawing happens between BeginSession and EndSession. Before a dab first
// writes to a tile within a session, the tile's pixels are copied into a
// shadow set (copy-on-first-touch). EndSession turns the shadow and the
// touched bounding box into a single undo payload and pushes it to the
// undo log, however many dabs were drawn:
//
//	s := surface.New(img, stack, surface.WithDescription("Paint"))
//	s.BeginSession()
//	for _, d := range dabs {
//	    s.DrawDab(d)
//	}
//	entry := s.EndSession() // nil when nothing was drawn
//
// A session that never draws pushes nothing. ResumeSession reopens an
// existing entry so later drawing amends it instead of creating a second
// step; post-processing uses this to redraw a stroke in place.
//
// # Failure behavior
//
// Painting never fails loudly. A dab that cannot be generated, or whose
// region cannot be read from the raster, is logged and has no effect.
package surface

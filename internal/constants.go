/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent       = "duelresult/0.3.0 (+https://github.com/mikeb26/duelresult)"
	SnapshotBucket  = "bopmatic-duelresult-prod-snapshots"
	DefaultSeries   = "default"
	DefaultStoreDir = ".duelresult"
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

var (
	EncodePayload = encodePayload
	DecodePayload = decodePayload
)

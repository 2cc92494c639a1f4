package codec

import (
	base64stream "github.com/tickwise/base64-stream"
)

type ByteSource = base64stream.ByteSource
type TextSource = base64stream.TextSource

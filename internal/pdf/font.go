package pdf

import _ "embed"

//go:embed DejaVuSans.ttf
var dejaVuSansFont []byte

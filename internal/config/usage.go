package config

import (
	"fmt"
	"io"
)

const usageText = `Usage: dexpreopt [options] <input.jar> <output.odex>
       dexpreopt [options] --bootstrap

Options:
  --build-dir=PATH        Base of the build tree (default: current directory)
  --dexopt=PATH           Path to the dexopt executable (default: auto-discover
                          under host/*/bin/dexopt)
  --product-dir=PATH      Product directory relative to the build dir (default:
                          the sole entry under target/product)
  --boot-dir=PATH         Boot classpath directory relative to the product dir
                          (default: system/framework)
  --boot-jars=A:B:C       Ordered boot archive names, colon-separated, no
                          extension (default: core)
  --bootstrap             Optimize every boot classpath entry in order instead
                          of a single input/output pair
  --verify={none,remote,all}
                          Verification level (default: all)
  --optimize={none,verified,all}
                          Optimization level (default: verified)
  --no-register-maps      Do not generate register maps
  --uniprocessor          Optimize for a uniprocessor target
  --log-level=LEVEL       trace, debug, info, warn, or error (default: warn,
                          or DEXPREOPT_LOG_LEVEL)
  --                      End of options
`

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

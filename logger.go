package brushwork

import (
	"log/slog"

	"github.com/gogpu/brushwork/internal/logging"
)

// SetLogger configures the logger for brushwork and all its sub-packages.
// By default, brushwork produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to restore the silent default.
//
// Log levels used by brushwork:
//   - [slog.LevelDebug]: session and tile diagnostics, dropped dabs
//   - [slog.LevelWarn]: failed post-processing tasks, unreadable raster regions
//   - [slog.LevelError]: assertion failures (precondition violations)
//
// Example:
//
//	brushwork.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by brushwork.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}

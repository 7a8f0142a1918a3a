package constants

// LibraryName contains the main name of this library
const LibraryName = "rtscope"

// LibraryOwner contains the name of the owner of this library
const LibraryOwner = "ActiveState"

// CommandName holds the name of our command
const CommandName = "rtscope"

// ConfigFileName holds the name of the file that declares the runtimes of a project
const ConfigFileName = "rtscope.yaml"

// ProjectFileEnvVarName is the env var used to point at a project file other than ConfigFileName in the working dir
const ProjectFileEnvVarName = "RTSCOPE_PROJECT_FILE"

// PrefixEnvVarName is the env var used to override the installation prefix
const PrefixEnvVarName = "RTSCOPE_PREFIX"

// LogLevelEnvVarName is the env var used to set the minimal log level, eg. DEBUG
const LogLevelEnvVarName = "RTSCOPE_LOG_LEVEL"

// VerboseEnvVarName is the env var used to enable verbose output
const VerboseEnvVarName = "RTSCOPE_VERBOSE"

// DefaultFamily is the library directory stem used when a runtime does not declare one
const DefaultFamily = "python"

// DefaultAllowedMajorVersions are the major versions eligible for selection when none are requested
var DefaultAllowedMajorVersions = []int{2, 3}

// ModulePathEnvVarName is the module search path that the site-packages directories are appended to
const ModulePathEnvVarName = "PYTHONPATH"

// BinaryEnvVarName points build steps at the selected interpreter
const BinaryEnvVarName = "PYTHON"

// IncludePathEnvVarName is the compiler include search path
const IncludePathEnvVarName = "CMAKE_INCLUDE_PATH"

// PkgConfigPathEnvVarName is the pkg-config search path
const PkgConfigPathEnvVarName = "PKG_CONFIG_PATH"

// ExecPathEnvVarName is the executable search path
const ExecPathEnvVarName = "PATH"

// LibDirName is the directory under the prefix that holds public libraries
const LibDirName = "lib"

// PrivateLibDirName is the directory under the prefix that holds private libraries
const PrivateLibDirName = "libexec/lib"

// PackagesDirName is the directory under a versioned library dir that holds installed packages
const PackagesDirName = "site-packages"

// SystemBinDirs are the directories whose interpreters are considered to be provided by the system
var SystemBinDirs = []string{"/usr/bin", "/bin", "/System/Library/Frameworks"}

// DefaultPrefixDirName is the directory next to the project file used as prefix when none is configured
const DefaultPrefixDirName = "build"
